package notify

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestTicketMessage(t *testing.T) {
    msg := TicketMessage("Alpha", "1:00 PM", []string{"S1", "S2"})
    assert.Equal(t, "Movie: Alpha\nTime Slot: 1:00 PM\nSeats: S1, S2\nEnjoy your movie!", msg)
}

func TestNotifySendsExpectedRequest(t *testing.T) {
    var seen struct {
        path string
        user string
        pass string
        form map[string]string
    }
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        seen.path = r.URL.Path
        seen.user, seen.pass, _ = r.BasicAuth()
        require.NoError(t, r.ParseForm())
        seen.form = map[string]string{
            "To":   r.PostFormValue("To"),
            "From": r.PostFormValue("From"),
            "Body": r.PostFormValue("Body"),
        }
        w.WriteHeader(http.StatusCreated)
    }))
    defer srv.Close()
    t.Setenv("SMS_API_URL", srv.URL)

    n := NewSMSNotifier("AC123", "secret-token", "+10005550000")
    err := n.Notify(context.Background(), "+15551234567", "Alpha", "1:00 PM", []string{"S1", "S2"})
    require.NoError(t, err)

    assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", seen.path)
    assert.Equal(t, "AC123", seen.user)
    assert.Equal(t, "secret-token", seen.pass)
    assert.Equal(t, "+15551234567", seen.form["To"])
    assert.Equal(t, "+10005550000", seen.form["From"])
    assert.Equal(t, TicketMessage("Alpha", "1:00 PM", []string{"S1", "S2"}), seen.form["Body"])
}

func TestNotifyRejectedByAPI(t *testing.T) {
    var calls int
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        calls++
        w.WriteHeader(http.StatusUnauthorized)
    }))
    defer srv.Close()
    t.Setenv("SMS_API_URL", srv.URL)

    n := NewSMSNotifier("AC123", "bad-token", "+10005550000")
    err := n.Notify(context.Background(), "+15551234567", "Alpha", "1:00 PM", []string{"S1"})
    assert.Error(t, err)
    // Delivery is never retried.
    assert.Equal(t, 1, calls)
}

func TestNotifyTransportFailure(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
    srv.Close() // closed so the request fails at the transport
    t.Setenv("SMS_API_URL", srv.URL)

    n := NewSMSNotifier("AC123", "secret-token", "+10005550000")
    err := n.Notify(context.Background(), "+15551234567", "Alpha", "1:00 PM", []string{"S1"})
    assert.Error(t, err)
}
