package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"QuantWatch/internal/model"
)

// YahooFetcher implements Fetcher using the Yahoo Finance public API.
type YahooFetcher struct {
	Client *http.Client
	Suffix string // exchange suffix appended to bare tickers, e.g. ".NS"
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(suffix, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Suffix: suffix,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if f.Suffix != "" && !strings.Contains(symbol, ".") {
		return symbol + f.Suffix
	}
	return symbol
}

// chartResponse mirrors the chart API payload. Quote fields are pointer
// slices because Yahoo emits JSON nulls for non-trading days.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []quoteSeries `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteSeries struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*float64 `json:"volume"`
}

// bar assembles one OHLCV from the parallel quote arrays. ok is false
// when the slot is a null bar that should be dropped.
func (q *quoteSeries) bar(i int, ts int64) (model.OHLCV, bool) {
	deref := func(s []*float64) float64 {
		if i >= len(s) || s[i] == nil {
			return 0
		}
		return *s[i]
	}
	b := model.OHLCV{
		Time:   time.Unix(ts, 0),
		Open:   deref(q.Open),
		High:   deref(q.High),
		Low:    deref(q.Low),
		Close:  deref(q.Close),
		Volume: deref(q.Volume),
	}
	if b.Open == 0 && b.High == 0 && b.Low == 0 && b.Close == 0 {
		return model.OHLCV{}, false
	}
	return b, true
}

func (f *YahooFetcher) fetchChart(symbol, interval, rng string) ([]model.OHLCV, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=%s&range=%s",
		url.PathEscape(f.yahooSymbol(symbol)), interval, rng)

	body, err := f.get(u)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote series")
	}
	quote := result.Indicators.Quote[0]

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if b, ok := quote.bar(i, ts); ok {
			bars = append(bars, b)
		}
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// get performs one GET with the browser user agent Yahoo requires and
// returns the body of a 200 response.
func (f *YahooFetcher) get(u string) ([]byte, error) {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

func (f *YahooFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	rng := "2y"
	switch {
	case days <= 30:
		rng = "1mo"
	case days <= 90:
		rng = "3mo"
	case days <= 180:
		rng = "6mo"
	case days <= 365:
		rng = "1y"
	}
	bars, err := f.fetchChart(symbol, "1d", rng)
	if err != nil {
		return nil, err
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// FetchHeadlines returns the most recent news titles for a symbol via the
// Yahoo Finance search API.
func (f *YahooFetcher) FetchHeadlines(symbol string, limit int) ([]string, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d",
		url.QueryEscape(f.yahooSymbol(symbol)), limit)

	body, err := f.get(u)
	if err != nil {
		return nil, fmt.Errorf("yahoo news: %w", err)
	}

	var result struct {
		News []struct {
			Title string `json:"title"`
		} `json:"news"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("yahoo news decode: %w", err)
	}

	headlines := make([]string, 0, len(result.News))
	for _, n := range result.News {
		if n.Title == "" {
			continue
		}
		headlines = append(headlines, n.Title)
		if len(headlines) == limit {
			break
		}
	}
	return headlines, nil
}
