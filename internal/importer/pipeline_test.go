package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_DropsRowsWithWrongFieldCount(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Tokenize("A,B\n1,2\n3"))

	assert.Equal(t, StageParsed, p.Stage())
	assert.Equal(t, []string{"A", "B"}, p.Headers())
	assert.Equal(t, 1, p.Rows())
	assert.Equal(t, 1, p.Dropped())
	assert.Equal(t, [][]string{{"1", "2"}}, p.Preview(10))
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "empty", input: "", want: ErrEmptyInput},
		{name: "blank lines only", input: "\n  \n\r\n", want: ErrEmptyInput},
		{name: "header only", input: "Date,Description,Amount\n\n", want: ErrEmptyInput},
		{name: "every row malformed", input: "Date,Description,Amount\n1,2\n3,4,5,6", want: ErrNoValidRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPipeline()
			err := p.Tokenize(tt.input)
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, StageIdle, p.Stage())
			assert.Zero(t, p.Rows())
		})
	}
}

func TestTokenize_QuotedFields(t *testing.T) {
	p := NewPipeline()
	input := "\"Date\",\"Description\",\"Amount\"\r\n" +
		"\r\n" +
		"03/04/2024,\"Coffee, large\",\"$4.50\"\r\n" +
		"  03/05/2024 , Say \"\"hi\"\" ,  7  \r\n"
	require.NoError(t, p.Tokenize(input))

	assert.Equal(t, []string{"Date", "Description", "Amount"}, p.Headers())
	assert.Equal(t, [][]string{
		{"03/04/2024", "Coffee, large", "$4.50"},
		{"03/05/2024", "Say hi", "7"},
	}, p.Preview(5))
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "a,b,c", want: []string{"a", "b", "c"}},
		{line: "a,,c", want: []string{"a", "", "c"}},
		{line: `"a,b",c`, want: []string{"a,b", "c"}},
		{line: `a"b,c`, want: []string{"ab,c"}},
		{line: " a , b ", want: []string{"a", "b"}},
		{line: "", want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLine(tt.line))
		})
	}
}

func TestTokenize_ReplacesPreviousStagedImport(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Tokenize("A,B\n1,2\n3,4"))
	require.NoError(t, p.Map(Mapping{Date: 0, Description: 1, Amount: 1}))
	require.Equal(t, StageMapped, p.Stage())

	require.NoError(t, p.Tokenize("X,Y,Z\n1,2,3"))
	assert.Equal(t, StageParsed, p.Stage())
	assert.Equal(t, []string{"X", "Y", "Z"}, p.Headers())
	assert.Equal(t, 1, p.Rows())
	assert.Equal(t, UnselectedMapping(), p.Mapping())
}

func TestTokenize_FailureDiscardsPreviousStagedImport(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Tokenize("A,B\n1,2"))
	require.ErrorIs(t, p.Tokenize("A,B"), ErrEmptyInput)
	assert.Equal(t, StageIdle, p.Stage())
	assert.Zero(t, p.Rows())
}

func TestCancel(t *testing.T) {
	p := NewPipeline()
	require.NoError(t, p.Tokenize("A,B\n1,2"))
	p.Cancel()
	assert.Equal(t, StageCancelled, p.Stage())
	assert.Zero(t, p.Rows())
	assert.Empty(t, p.Headers())

	// Cancel outside of a staged import changes nothing.
	p.Reset()
	p.Cancel()
	assert.Equal(t, StageIdle, p.Stage())
}

func TestSuggestMapping(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Mapping
	}{
		{
			name:    "common bank export",
			headers: []string{"Transaction Date", "Description", "Amount"},
			want:    Mapping{Date: 0, Description: 1, Amount: 2},
		},
		{
			name:    "case insensitive alternatives",
			headers: []string{"MERCHANT", "Posted", "Withdrawal"},
			want:    Mapping{Date: 1, Description: 0, Amount: 2},
		},
		{
			name:    "last match wins",
			headers: []string{"Posting Date", "Memo", "Debit", "Value Date", "Amount"},
			want:    Mapping{Date: 3, Description: 1, Amount: 4},
		},
		{
			name:    "date takes precedence within one header",
			headers: []string{"Amount Date", "Description", "Debit"},
			want:    Mapping{Date: 0, Description: 1, Amount: 2},
		},
		{
			name:    "nothing recognised",
			headers: []string{"foo", "bar"},
			want:    UnselectedMapping(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestMapping(tt.headers))
		})
	}
}

func TestMap(t *testing.T) {
	p := NewPipeline()
	require.ErrorIs(t, p.Map(Mapping{Date: 0, Description: 1, Amount: 2}), ErrNoStagedImport)

	require.NoError(t, p.Tokenize("Date,Description,Amount\n1/1/24,x,1"))
	require.ErrorIs(t, p.Map(Mapping{Date: 0, Description: Unselected, Amount: 2}), ErrColumnNotSelected)
	require.ErrorIs(t, p.Map(Mapping{Date: 0, Description: 1, Amount: 3}), ErrColumnOutOfRange)
	assert.Equal(t, StageParsed, p.Stage())

	require.NoError(t, p.Map(Mapping{Date: 0, Description: 1, Amount: 2}))
	assert.Equal(t, StageMapped, p.Stage())
}
