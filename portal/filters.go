package portal

import (
	"fmt"

	"github.com/hoopsgrab-cli/hoopsgrab/log"
)

const (
	centerTrigger = `#center_list .item-link`
	centerSelect  = `#videos_centers`
	courtTrigger  = `#court_list .item-link`
	courtSelect   = `#videos_courts`
	dayTrigger    = `#day_list .item-link`
	daySelect     = `#videos_days`
)

// forceSelectScript writes a select's value directly and dispatches a bubbling
// change event. The portal renders its filter selects off-screen or
// display:none, so a simulated click alone does not reliably update the
// underlying form state; the property write does, visible or not.
const forceSelectScript = `(() => {
	const select = document.querySelector(%q);
	if (!select) return false;
	select.value = %q;
	select.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`

// forceDateScript is the guarded variant for the date select: the value is
// only written when it exists among the options, since the portal drops dates
// without recordings from the list.
const forceDateScript = `(() => {
	const select = document.querySelector(%q);
	if (!select) return false;
	if (!Array.from(select.options).some(opt => opt.value === %q)) return false;
	select.value = %q;
	select.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`

// confirmDateScript clicks the date sheet's OK control when it is present.
const confirmDateScript = `(() => {
	const ok = document.querySelector('a.link.sheet-close');
	if (ok) ok.click();
	return ok !== null;
})()`

// ApplyFilters selects the configured center and court, then the target
// session date. A date absent from the portal's options is logged and left at
// the default (all dates); any error escaping the sequence yields false.
func (c *Client) ApplyFilters(dateKey string) bool {
	log.Info("applying listing filters")

	if err := c.forceSelect(centerTrigger, centerSelect, c.Center); err != nil {
		log.Errorf("filters: selecting center failed: %s", err)
		return false
	}
	log.Infof("selected center %q", c.Center)

	if err := c.forceSelect(courtTrigger, courtSelect, c.Court); err != nil {
		log.Errorf("filters: selecting court failed: %s", err)
		return false
	}
	log.Infof("selected court %q", c.Court)

	if err := c.selectDate(dateKey); err != nil {
		log.Errorf("filters: selecting date failed: %s", err)
		return false
	}

	// Allow the listing to re-render with the new filter state.
	c.Driver.Sleep(c.FilterSettle)
	return true
}

// forceSelect opens a filter widget via a simulated click and then forces the
// backing select element's value through script.
func (c *Client) forceSelect(trigger, selector, value string) error {
	if err := c.Driver.Click(trigger); err != nil {
		return err
	}

	var updated bool
	script := fmt.Sprintf(forceSelectScript, selector, value)
	if err := c.Driver.Evaluate(script, &updated); err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("select %s not found", selector)
	}
	return nil
}

func (c *Client) selectDate(dateKey string) error {
	if err := c.Driver.Click(dayTrigger); err != nil {
		return err
	}

	var selected bool
	script := fmt.Sprintf(forceDateScript, daySelect, dateKey, dateKey)
	if err := c.Driver.Evaluate(script, &selected); err != nil {
		return err
	}
	if selected {
		log.Infof("selected session date %s", dateKey)
	} else {
		log.Warnf("date %s not available, keeping all dates selected", dateKey)
	}

	var confirmed bool
	if err := c.Driver.Evaluate(confirmDateScript, &confirmed); err != nil {
		return err
	}
	if confirmed {
		log.Debug("confirmed date selection")
	}
	return nil
}
