package notify

import (
	"sync"
	"time"

	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/logger"
)

const (
	errorSummary = "flipplayer"
	errorIcon    = "dialog-error"
	errorExpire  = 5 * time.Second
)

// Reporter shows player errors as desktop notifications. A new error
// replaces the previous error notification instead of stacking.
type Reporter struct {
	notifier Notifier

	mu     sync.Mutex
	lastID uint32
	wg     sync.WaitGroup
}

// NewReporter creates a Reporter sending through n.
func NewReporter(n Notifier) *Reporter {
	return &Reporter{notifier: n}
}

// ReportError sends the notification in the background; it never blocks
// the caller and delivery failures are only logged.
func (r *Reporter) ReportError(op errmsg.Op, err error) {
	if err == nil {
		return
	}
	body := errmsg.Format(op, err)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.send(body)
	}()
}

func (r *Reporter) send(body string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.notifier.Notify(Message{
		Summary:  errorSummary,
		Body:     body,
		Icon:     errorIcon,
		Expire:   errorExpire,
		Replaces: r.lastID,
	})
	if err != nil {
		logger.Log.Debug().Err(err).Msg("send notification")
		return
	}
	r.lastID = id
}

// Wait blocks until pending notifications are sent.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
