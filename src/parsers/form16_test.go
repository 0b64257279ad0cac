package parsers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/username/taxhawk/backend/src/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestExtractText_EmptyDocument(t *testing.T) {
	_, err := ExtractText(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = ExtractText([]byte{})
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestExtractText_NotAPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is plain text, not a pdf"))
	assert.ErrorIs(t, err, ErrUnreadableDocument)
}
