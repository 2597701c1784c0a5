package portal

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// fakeDriver scripts the page-automation surface for tests.
type fakeDriver struct {
	location      string
	cardsJSON     string
	dateAvailable bool

	navErr   error
	clickErr error
	waitErr  error
	evalErr  error

	navigated []string
	clicked   []string
	values    map[string]string
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{values: map[string]string{}}
}

func (d *fakeDriver) Navigate(url string) error {
	d.navigated = append(d.navigated, url)
	return d.navErr
}

func (d *fakeDriver) Click(selector string) error {
	d.clicked = append(d.clicked, selector)
	return d.clickErr
}

func (d *fakeDriver) SetValue(selector, value string) error {
	d.values[selector] = value
	return nil
}

func (d *fakeDriver) Evaluate(expression string, result any) error {
	if d.evalErr != nil {
		return d.evalErr
	}
	switch {
	case strings.Contains(expression, "querySelectorAll('.card')"):
		return json.Unmarshal([]byte(d.cardsJSON), result)
	case strings.Contains(expression, "select.options") || strings.Contains(expression, "opt.value"):
		*(result.(*bool)) = d.dateAvailable
	case strings.Contains(expression, "sheet-close"):
		*(result.(*bool)) = true
	default:
		*(result.(*bool)) = true
	}
	return nil
}

func (d *fakeDriver) WaitReady(selector string, timeout time.Duration) error {
	return d.waitErr
}

func (d *fakeDriver) WaitQuiescent(timeout time.Duration) error {
	return nil
}

func (d *fakeDriver) Location() (string, error) {
	if d.location == "" {
		return "", errors.New("no location scripted")
	}
	return d.location, nil
}

func (d *fakeDriver) Sleep(time.Duration) {}

func newTestClient(d *fakeDriver) *Client {
	return &Client{
		Driver:      d,
		BaseURL:     "https://hoopsfactory.example",
		Center:      "0",
		Court:       "3",
		WindowStart: 1200,
		WindowEnd:   1330,
	}
}
