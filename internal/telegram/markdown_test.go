package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/sofia/internal/domain"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{
			name: "inline formatting",
			md:   "**Art. 86** ustawy o *VAT* i `JPK_V7M`",
			want: "<b>Art. 86</b> ustawy o <i>VAT</i> i <code>JPK_V7M</code>",
		},
		{
			name: "paragraphs",
			md:   "Pierwszy akapit.\n\nDrugi akapit.",
			want: "Pierwszy akapit.\n\nDrugi akapit.",
		},
		{
			name: "heading",
			md:   "## Podstawa prawna\n\nUstawa o PIT.",
			want: "<b>Podstawa prawna</b>\n\nUstawa o PIT.",
		},
		{
			name: "bullet list",
			md:   "- Rodzaj dokumentu\n- Termin: 25 dnia",
			want: "• Rodzaj dokumentu\n• Termin: 25 dnia",
		},
		{
			name: "ordered list",
			md:   "1. Złóż deklarację\n2. Zapłać podatek",
			want: "1. Złóż deklarację\n2. Zapłać podatek",
		},
		{
			name: "link",
			md:   "[ISAP](https://isap.sejm.gov.pl/?a=1&b=2)",
			want: `<a href="https://isap.sejm.gov.pl/?a=1&amp;b=2">ISAP</a>`,
		},
		{
			name: "escapes html",
			md:   "Kwota < 10 000 zł & więcej",
			want: "Kwota &lt; 10 000 zł &amp; więcej",
		},
		{
			name: "code block",
			md:   "```\nif a < b {}\n```",
			want: "<pre>if a &lt; b {}</pre>",
		},
		{
			name: "unclosed code block",
			md:   "```\nkod",
			want: "<pre>kod</pre>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarkdownToHTML(tt.md)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownToHTMLNestedList(t *testing.T) {
	got, err := MarkdownToHTML("- Działalność\n    - VAT\n    - PIT\n- Kadry")
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "• Działalność", lines[0])
	assert.Equal(t, "  • VAT", lines[1])
	assert.Equal(t, "  • PIT", lines[2])
	assert.Equal(t, "• Kadry", lines[3])
}

func TestMarkdownToHTMLTable(t *testing.T) {
	got, err := MarkdownToHTML("| Podatek | Stawka |\n|---|---|\n| VAT | 23% |")
	require.NoError(t, err)
	assert.Equal(t, "<b>Podatek</b> | <b>Stawka</b>\nVAT | 23%", got)
}

func TestFixMarkdown(t *testing.T) {
	assert.Equal(t, "```\ncode\n```", FixMarkdown("```\ncode"))
	assert.Equal(t, "a `b`", FixMarkdown("a `b"))
	assert.Equal(t, "ok", FixMarkdown("ok"))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, SplitMessage("short", 10))

	text := strings.Repeat("ą", 8) + "\n" + strings.Repeat("ę", 8)
	parts := SplitMessage(text, 10)
	require.Len(t, parts, 2)
	assert.Equal(t, strings.Repeat("ą", 8)+"\n", parts[0])
	assert.Equal(t, strings.Repeat("ę", 8), parts[1])
	assert.Equal(t, text, strings.Join(parts, ""))

	long := strings.Repeat("x", 25)
	parts = SplitMessage(long, 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, parts)
}

func TestFormatSources(t *testing.T) {
	assert.Empty(t, FormatSources("Źródła", nil))

	got := FormatSources("Źródła", []domain.GroundingSource{
		{Title: "Ustawa o VAT", URI: "https://isap.sejm.gov.pl/vat"},
		{URI: "https://podatki.gov.pl"},
	})
	assert.Equal(t, "<b>Źródła</b>\n"+
		"1. <a href=\"https://isap.sejm.gov.pl/vat\">Ustawa o VAT</a>\n"+
		"2. <a href=\"https://podatki.gov.pl\">Source</a>", got)
}
