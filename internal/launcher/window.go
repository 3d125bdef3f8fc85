package launcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/31Joojo/portfolio/internal/logging"
)

const windowIdleAfter = 2 * time.Second

// Window is the graphical backend: it opens a browser window on the
// dashboard and leaves it up until Close. Used when server.headless is
// false.
type Window struct {
	logger logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWindow creates a browser-window launcher.
func NewWindow(logger logging.Logger) *Window {
	return &Window{logger: logger}
}

// waitNetworkIdle signals once no network request has been in flight for
// idleAfter. Charts and fonts load asynchronously, so a bare page-load event
// fires too early to call the dashboard "up".
func waitNetworkIdle(ctx context.Context, idleAfter time.Duration) chan struct{} {
	idleChan := make(chan struct{})
	var activeReqs int32
	var timer *time.Timer
	var timerMutex sync.Mutex
	var once sync.Once

	startTimer := func() {
		timerMutex.Lock()
		defer timerMutex.Unlock()

		if timer != nil {
			timer.Stop()
		}

		timer = time.AfterFunc(idleAfter, func() {
			if atomic.LoadInt32(&activeReqs) == 0 {
				once.Do(func() {
					close(idleChan)
				})
			}
		})
	}

	chromedp.ListenTarget(ctx, func(ev any) {
		switch ev.(type) {
		case *network.EventRequestWillBeSent:
			atomic.AddInt32(&activeReqs, 1)
		case *network.EventLoadingFinished, *network.EventLoadingFailed:
			if atomic.AddInt32(&activeReqs, -1) == 0 {
				startTimer()
			}
		}
	})

	return idleChan
}

// Launch implements Launcher. It returns once the dashboard has finished
// loading in the browser window; the window itself stays open until Close.
func (w *Window) Launch(ctx context.Context, url string) error {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:2],
			chromedp.Flag("headless", false),
		)...,
	)

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	w.mu.Lock()
	w.cancel = func() {
		browserCancel()
		allocCancel()
	}
	w.mu.Unlock()

	idle := waitNetworkIdle(browserCtx, windowIdleAfter)

	if err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.Navigate(url),
	); err != nil {
		return err
	}

	select {
	case <-idle:
	case <-browserCtx.Done():
		return browserCtx.Err()
	}

	w.logger.Info("dashboard window opened", logging.Field{Key: "url", Value: url})
	return nil
}

func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return nil
}
