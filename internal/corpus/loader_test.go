package corpus

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

func TestLoadReaderParsesLabeledLines(t *testing.T) {
	input := "ham\tlet's meet for lunch\n" +
		"spam\tWIN FREE CASH NOW\n" +
		"\n" +
		"ham\tare you coming tonight\n"

	msgs, err := LoadReader(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, core.RawMessage{Text: "let's meet for lunch", Label: core.LabelHam}, msgs[0])
	assert.Equal(t, core.RawMessage{Text: "WIN FREE CASH NOW", Label: core.LabelSpam}, msgs[1])
}

func TestLoadReaderPreservesTabsInsideText(t *testing.T) {
	msgs, err := LoadReader(strings.NewReader("spam\tfree\tgift\tnow\n"))
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "free\tgift\tnow", msgs[0].Text)
}

func TestLoadReaderRejectsMalformedLine(t *testing.T) {
	_, err := LoadReader(strings.NewReader("ham\tfine\nno tab separator here\n"))
	require.Error(t, err)

	var dataErr *core.DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Contains(t, dataErr.Reason, "line 2")
}

func TestLoadReaderRejectsUnknownLabel(t *testing.T) {
	_, err := LoadReader(strings.NewReader("maybe\tis this spam?\n"))
	require.Error(t, err)

	var dataErr *core.DataError
	require.True(t, errors.As(err, &dataErr))
}

func TestLoadReaderRejectsEmptyCorpus(t *testing.T) {
	_, err := LoadReader(strings.NewReader("\n\n  \n"))
	require.Error(t, err)

	var dataErr *core.DataError
	require.True(t, errors.As(err, &dataErr))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/corpus.tsv")
	require.Error(t, err)
}
