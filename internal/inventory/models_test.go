package inventory

import (
	"testing"
	"time"
)

func TestTicketExpiry(t *testing.T) {
	now := time.Now().UTC()
	ttl := 15 * time.Minute

	tests := []struct {
		name        string
		ticket      Ticket
		wantExpired bool
		wantLive    bool
	}{
		{
			name:        "fresh hold is live",
			ticket:      Ticket{Status: StatusReserved, CreatedAt: now.Add(-time.Minute)},
			wantExpired: false,
			wantLive:    true,
		},
		{
			name:        "hold at exactly the TTL is expired",
			ticket:      Ticket{Status: StatusReserved, CreatedAt: now.Add(-ttl)},
			wantExpired: true,
			wantLive:    false,
		},
		{
			name:        "sold tickets never expire",
			ticket:      Ticket{Status: StatusSold, CreatedAt: now.Add(-24 * time.Hour)},
			wantExpired: false,
			wantLive:    true,
		},
		{
			name:        "cancelled tickets are not live",
			ticket:      Ticket{Status: StatusCancelled, CreatedAt: now},
			wantExpired: false,
			wantLive:    false,
		},
		{
			name:        "used tickets are not live",
			ticket:      Ticket{Status: StatusUsed, CreatedAt: now},
			wantExpired: false,
			wantLive:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ticket.IsExpired(ttl, now); got != tt.wantExpired {
				t.Errorf("IsExpired = %v, want %v", got, tt.wantExpired)
			}
			if got := tt.ticket.IsLive(ttl, now); got != tt.wantLive {
				t.Errorf("IsLive = %v, want %v", got, tt.wantLive)
			}
		})
	}
}

func TestTicketExpiresAt(t *testing.T) {
	ttl := 15 * time.Minute
	created := time.Now().UTC()

	held := Ticket{Status: StatusReserved, CreatedAt: created}
	if got := held.ExpiresAt(ttl); !got.Equal(created.Add(ttl)) {
		t.Errorf("ExpiresAt = %v, want %v", got, created.Add(ttl))
	}

	sold := Ticket{Status: StatusSold, CreatedAt: created}
	if got := sold.ExpiresAt(ttl); !got.IsZero() {
		t.Errorf("sold ticket must not report an expiry, got %v", got)
	}
}
