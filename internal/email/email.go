package email

import (
	"context"
	"fmt"

	"github.com/campuslib/roombooking/internal/kafka"
)

// Sender notifies the librarian desk about submitted requests.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.RequestEvent) error {
	fmt.Printf("notify librarian desk: %s request %s for room %d, %s - %s\n",
		event.Type, event.RequestID, event.RoomID,
		event.StartTime.Format("15:04"), event.EndTime.Format("15:04"))
	return nil
}
