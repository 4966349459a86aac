// Package notify sends booking confirmations to the user's phone through an
// external messaging API.  Delivery is best-effort: failures are logged and
// returned but never retried.
package notify

import (
    "context"
    "fmt"
    "log"
    "net/http"
    "net/url"
    "os"
    "strings"
    "time"
)

// SMSNotifier delivers confirmation messages through a Twilio-compatible
// Messages endpoint.  Credentials come from configuration, never from code.
type SMSNotifier struct {
    accountID string // messaging account identifier (basic auth user)
    authToken string // messaging auth token (basic auth password)
    sender    string // phone number the message is sent from
    apiBase   string // messaging API base URL
    http      *http.Client
}

// NewSMSNotifier returns an SMSNotifier for the given account.  The API base
// defaults to the public Twilio endpoint and can be overridden with
// SMS_API_URL (useful for tests and staging).
func NewSMSNotifier(accountID, authToken, sender string) *SMSNotifier {
    base := os.Getenv("SMS_API_URL")
    if base == "" {
        base = "https://api.twilio.com"
    }
    return &SMSNotifier{
        accountID: accountID,
        authToken: authToken,
        sender:    sender,
        apiBase:   base,
        http:      &http.Client{Timeout: 15 * time.Second},
    }
}

// TicketMessage renders the fixed confirmation template for a booking.
func TicketMessage(show, slot string, seats []string) string {
    return fmt.Sprintf("Movie: %s\nTime Slot: %s\nSeats: %s\nEnjoy your movie!",
        show, slot, strings.Join(seats, ", "))
}

// Notify sends the ticket details for a confirmed booking to phone.  Any
// failure (transport error, authentication rejection, invalid number) is
// logged and returned as an error.  Delivery is never retried; the caller
// decides how to surface the failure to the user.
func (n *SMSNotifier) Notify(ctx context.Context, phone, show, slot string, seats []string) error {
    endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", n.apiBase, n.accountID)
    form := url.Values{}
    form.Set("To", phone)
    form.Set("From", n.sender)
    form.Set("Body", TicketMessage(show, slot, seats))

    req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
    if err != nil {
        log.Printf("notify: build request failed: %v", err)
        return err
    }
    req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
    req.SetBasicAuth(n.accountID, n.authToken)

    resp, err := n.http.Do(req)
    if err != nil {
        log.Printf("notify: send to %s failed: %v", phone, err)
        return err
    }
    defer resp.Body.Close()
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        err := fmt.Errorf("messaging API returned status %d", resp.StatusCode)
        log.Printf("notify: send to %s rejected: %v", phone, err)
        return err
    }
    return nil
}
