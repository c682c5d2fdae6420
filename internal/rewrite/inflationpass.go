package rewrite

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gwern/ssgen/internal/ast"
	"github.com/gwern/ssgen/internal/inflation"
)

// currencyYearPattern matches the "$<amount> (<year>)" shorthand this pass
// expands, e.g. "$100 (1980)" -> "$100 (1980; $392 in 2025)".
var currencyYearPattern = regexp.MustCompile(`\$([0-9][0-9,]*(?:\.[0-9]+)?)\s*\((1[89][0-9]{2}|20[0-9]{2})\)`)

// AdjustInflation detects historical currency amounts in text and
// rewrites them to include a present-day equivalent alongside the
// original.
func AdjustInflation(doc *Document, ctx *Context) (*Document, error) {
	doc.Blocks = rewriteBlocksInlines(doc.Blocks, inflateInlines)
	return doc, nil
}

func inflateInlines(inlines []ast.Inline) []ast.Inline {
	out := make([]ast.Inline, 0, len(inlines))
	for _, in := range inlines {
		str, ok := in.(*ast.Str)
		if !ok || !currencyYearPattern.MatchString(str.Text) {
			out = append(out, in)
			continue
		}
		out = append(out, &ast.Str{Text: expandCurrencyYears(str.Text)})
	}
	return out
}

func expandCurrencyYears(text string) string {
	return currencyYearPattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := currencyYearPattern.FindStringSubmatch(match)
		amountText, yearText := sub[1], sub[2]

		amount, err := strconv.ParseFloat(strings.ReplaceAll(amountText, ",", ""), 64)
		if err != nil {
			return match
		}
		year, err := strconv.Atoi(yearText)
		if err != nil {
			return match
		}

		equivalent, ok := inflation.FormatEquivalent(amount, year)
		if !ok {
			return match
		}
		return "$" + amountText + " (" + yearText + "; " + equivalent + ")"
	})
}
