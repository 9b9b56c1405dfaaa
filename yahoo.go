package investo

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/kobedemuelenaere/InvestoApp/date"
)

// Yahoo fetches daily closing prices from the Yahoo Finance chart API. It
// is the external price source collaborator: availability failures here
// surface as data gaps downstream, never as aborted computations.
type Yahoo struct {
	client *http.Client
}

// NewYahoo returns a fetcher with a daily-expiring disk cache, so the
// aggregator's bulk preload never hits the network twice in a day for the
// same range.
func NewYahoo() *Yahoo { return &Yahoo{client: daily()} }

// The chart endpoint is served by several hosts; rotate on throttling.
var yahooHosts = []string{
	"query1.finance.yahoo.com",
	"query2.finance.yahoo.com",
}

// Yahoo throttles unknown agents aggressively.
const yahooUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/118.0"

// yahooChart mirrors the parts of the chart API response the fetcher
// needs. The currency is read separately with a jsonpath, the meta object
// is otherwise large and irrelevant.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// fetch GETs a chart URL, rotating hosts and backing off when throttled.
func (y *Yahoo) fetch(symbol string, query url.Values) ([]byte, error) {
	headers := map[string]string{"User-Agent": yahooUserAgent}
	var lastErr error
	for attempt, host := range yahooHosts {
		addr := fmt.Sprintf("https://%s/v8/finance/chart/%s?%s", host, url.PathEscape(symbol), query.Encode())
		body, err := wget(y.client, addr, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Printf("yahoo fetch %q via %s failed: %v", symbol, host, err)
		time.Sleep(time.Duration(attempt+1) * time.Second)
	}
	return nil, lastErr
}

// FetchHistory returns the daily closing prices of a symbol over an
// inclusive date range, and the currency those prices are quoted in.
//
// Days without a close (market holidays, null entries) are absent from the
// result, not zero-filled: the as-of lookup downstream handles the gaps.
func (y *Yahoo) FetchHistory(symbol string, from, to date.Date) (*date.History[float64], string, error) {
	query := url.Values{
		"period1":  {fmt.Sprint(from.Unix())},
		"period2":  {fmt.Sprint(to.Add(1).Unix())},
		"interval": {"1d"},
		"events":   {"history"},
	}
	body, err := y.fetch(symbol, query)
	if err != nil {
		return nil, "", fmt.Errorf("cannot fetch history for %q: %w", symbol, err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, "", fmt.Errorf("cannot parse history for %q: %w", symbol, err)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, "", fmt.Errorf("no chart data for %q (error: %v)", symbol, chart.Chart.Error)
	}
	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	prices := new(date.History[float64])
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		close := closes[i]
		if close == 0 || math.IsNaN(close) {
			continue
		}
		prices.Append(date.FromUnix(ts), close)
	}

	currency, err := yahooCurrency(body)
	if err != nil {
		return nil, "", fmt.Errorf("cannot read currency for %q: %w", symbol, err)
	}
	return prices, currency, nil
}

// yahooCurrency extracts the quote currency from a chart response.
func yahooCurrency(body []byte) (string, error) {
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return "", err
	}
	path := "$.chart.result[0].meta.currency"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", fmt.Errorf("no %q in chart response: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	currency, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("currency is not a string: %v", jval)
	}
	return currency, nil
}

// Probe checks that a symbol resolves at the source and reports its
// trading currency, using a cheap few-days fetch. The mapping check
// command uses it to validate hand-entered tickers.
func (y *Yahoo) Probe(symbol string) (currency string, err error) {
	today := date.Today()
	_, currency, err = y.FetchHistory(symbol, today.Add(-5), today)
	return currency, err
}
