package portal

import (
	"strings"
	"time"

	"github.com/hoopsgrab-cli/hoopsgrab/log"
)

const (
	loginFormSelector = `form[name="login"]`
	emailSelector     = `input[name="email-login"]`
	passwordSelector  = `input[name="password-login"]`
	submitSelector    = `#validate-login-form`

	// accountMarker appears in the post-login URL of a signed-in account.
	// The portal renders error banners inconsistently, so the redirect target
	// is the only reliable success signal.
	accountMarker = "my-account"

	loginFormTimeout = 10 * time.Second
	loginLoadTimeout = 15 * time.Second
)

// Login submits the portal's login form and reports whether the account page
// was reached. Errors anywhere in the sequence are logged and yield false,
// never propagated.
func (c *Client) Login(email, password string) bool {
	log.Infof("navigating to login page: %s", c.LoginURL())
	if err := c.Driver.Navigate(c.LoginURL()); err != nil {
		log.Errorf("login: navigation failed: %s", err)
		return false
	}

	if err := c.Driver.WaitReady(loginFormSelector, loginFormTimeout); err != nil {
		log.Errorf("login: form never attached: %s", err)
		return false
	}
	log.Debug("login form found, submitting credentials")

	if err := c.Driver.SetValue(emailSelector, email); err != nil {
		log.Errorf("login: filling email failed: %s", err)
		return false
	}
	if err := c.Driver.SetValue(passwordSelector, password); err != nil {
		log.Errorf("login: filling password failed: %s", err)
		return false
	}
	if err := c.Driver.Click(submitSelector); err != nil {
		log.Errorf("login: submit click failed: %s", err)
		return false
	}

	if err := c.Driver.WaitQuiescent(loginLoadTimeout); err != nil {
		log.Errorf("login: page never settled after submit: %s", err)
		return false
	}

	url, err := c.Driver.Location()
	if err != nil {
		log.Errorf("login: reading post-login URL failed: %s", err)
		return false
	}
	if !strings.Contains(strings.ToLower(url), accountMarker) {
		log.Warnf("login rejected, landed on %s", url)
		return false
	}

	log.Info("login successful")
	return true
}
