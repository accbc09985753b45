package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"equity_screener/pkg/core/company"
)

// headerFields maps normalized table headers to record fields. Screener-site
// exports are inconsistent about naming, so several aliases map to the same
// field.
var headerFields = map[string]string{
	"ticker":            "ticker",
	"symbol":            "ticker",
	"code":              "ticker",
	"name":              "name",
	"company":           "name",
	"region":            "region",
	"market":            "region",
	"sector":            "sector",
	"industry":          "industry",
	"price":             "price",
	"last price":        "price",
	"market cap":        "marketCap",
	"marketcap":         "marketCap",
	"pe":                "pe",
	"p/e":               "pe",
	"pb":                "pb",
	"p/b":               "pb",
	"roe":               "roe",
	"de":                "debtToEquity",
	"d/e":               "debtToEquity",
	"debt/equity":       "debtToEquity",
	"current ratio":     "currentRatio",
	"quick ratio":       "quickRatio",
	"ebitda margin":     "ebitdaMargin",
	"gross margin":      "grossMargin",
	"revenue growth":    "revenueGrowth",
	"eps growth":        "epsGrowth",
	"net income growth": "netIncomeGrowth",
	"beta":              "beta",
	"alpha":             "alpha",
	"dividend yield":    "dividendYield",
	"index weight":      "indexWeight",
	"ytd":               "ytdReturn",
	"ytd return":        "ytdReturn",
}

// ParseFundamentalsTable extracts a universe from an HTML fundamentals table
// (the export format of common screener sites). The first table with a
// recognizable ticker column wins. Unrecognized columns are ignored and
// unparseable cells leave the field unset.
func ParseFundamentalsTable(r io.Reader) ([]company.Company, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse fundamentals html: %w", err)
	}

	var universe []company.Company
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		cols := headerColumns(table)
		if _, ok := cols["ticker"]; !ok {
			return true // not a fundamentals table, keep looking
		}
		table.Find("tbody tr, tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() == 0 {
				return // header row
			}
			c := rowToCompany(cells, cols)
			if c.Ticker != "" {
				universe = append(universe, c)
			}
		})
		return false
	})

	if len(universe) == 0 {
		return nil, fmt.Errorf("no fundamentals table found in document")
	}
	return universe, nil
}

// headerColumns maps field names to cell indexes for one table.
func headerColumns(table *goquery.Selection) map[string]int {
	cols := make(map[string]int)
	table.Find("th").Each(func(i int, th *goquery.Selection) {
		header := strings.ToLower(strings.TrimSpace(th.Text()))
		if field, ok := headerFields[header]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	})
	return cols
}

func rowToCompany(cells *goquery.Selection, cols map[string]int) company.Company {
	text := func(field string) (string, bool) {
		i, ok := cols[field]
		if !ok || i >= cells.Length() {
			return "", false
		}
		return strings.TrimSpace(cells.Eq(i).Text()), true
	}
	num := func(field string) *float64 {
		s, ok := text(field)
		if !ok {
			return nil
		}
		v, err := parseNumber(s)
		if err != nil {
			return nil
		}
		return &v
	}

	var c company.Company
	if s, ok := text("ticker"); ok {
		c.Ticker = strings.ToUpper(s)
	}
	if s, ok := text("name"); ok {
		c.Name = s
	}
	if s, ok := text("region"); ok && s != "" {
		c.Region = s
	} else {
		c.Region = company.RegionIndonesia
	}
	if s, ok := text("sector"); ok {
		c.Sector = s
	}
	if s, ok := text("industry"); ok {
		c.Industry = s
	}
	if v := num("price"); v != nil {
		c.Price = *v
	}
	if v := num("marketCap"); v != nil {
		c.MarketCap = *v
	}

	c.PE = num("pe")
	c.PB = num("pb")
	c.ROE = num("roe")
	c.DebtToEquity = num("debtToEquity")
	c.CurrentRatio = num("currentRatio")
	c.QuickRatio = num("quickRatio")
	c.EBITDAMargin = num("ebitdaMargin")
	c.GrossMargin = num("grossMargin")
	c.RevenueGrowth = num("revenueGrowth")
	c.EPSGrowth = num("epsGrowth")
	c.NetIncomeGrowth = num("netIncomeGrowth")
	c.Beta = num("beta")
	c.Alpha = num("alpha")
	c.DividendYield = num("dividendYield")
	c.IndexWeight = num("indexWeight")
	c.YTDReturn = num("ytdReturn")
	return c
}

// parseNumber handles the formatting screener exports use: thousands commas,
// percent signs, and dash placeholders for missing values.
func parseNumber(s string) (float64, error) {
	cleaned := strings.ReplaceAll(s, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" || cleaned == "-" || cleaned == "—" || strings.EqualFold(cleaned, "n/a") {
		return 0, fmt.Errorf("empty cell")
	}
	return strconv.ParseFloat(cleaned, 64)
}
