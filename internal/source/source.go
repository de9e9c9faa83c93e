package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/nxadm/tail"
	"github.com/tidwall/gjson"

	"statboard/internal/model"
	"statboard/internal/util"
	"statboard/internal/util/logx"
	"statboard/internal/version"
)

type Kind string

const (
	KindURL   Kind = "url"
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindDemo  Kind = "demo"
)

type Options struct {
	Kind Kind
	URL  string
	Path string
	// Timeout bounds the HTTP request; 0 means no timeout.
	Timeout time.Duration
	Client  *http.Client
	Stdin   io.Reader
}

// Update is one payload seen while following a file.
type Update struct {
	Payload model.Payload
	Err     error
	When    time.Time
}

// Fetch returns the raw payload body.
func Fetch(ctx context.Context, opt Options) ([]byte, error) {
	switch opt.Kind {
	case KindURL:
		return fetchURL(ctx, opt)
	case KindFile:
		b, err := os.ReadFile(opt.Path)
		if err != nil {
			return nil, err
		}
		return lastDocument(b), nil
	case KindStdin:
		r := opt.Stdin
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	case KindDemo:
		return Demo(), nil
	}
	return nil, fmt.Errorf("unknown source kind %q", opt.Kind)
}

// Load fetches and decodes the payload. An upstream error string comes back
// as *model.PayloadError; anything else is a transport or parse failure.
func Load(ctx context.Context, opt Options) (model.Payload, error) {
	start := time.Now()
	b, err := Fetch(ctx, opt)
	if err != nil {
		return model.Payload{}, fmt.Errorf("fetch %s: %w", opt.Kind, err)
	}
	p, err := model.Decode(b)
	logx.Infof("source: kind=%s bytes=%d took=%s err=%v", opt.Kind, len(b), time.Since(start).Round(time.Millisecond), err)
	return p, err
}

func fetchURL(ctx context.Context, opt Options) ([]byte, error) {
	client := opt.Client
	if client == nil {
		client = http.DefaultClient
	}
	if opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opt.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opt.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 != 2 {
		// Some upstreams report {"error": ...} with a failing status.
		if e := gjson.GetBytes(body, "error"); e.Exists() && e.String() != "" {
			return body, nil
		}
		return nil, fmt.Errorf("GET %s: %s", util.Redact(opt.URL), resp.Status)
	}
	return body, nil
}

// lastDocument returns b when it is a single JSON document, otherwise the
// last non-empty line, so a file of appended payload snapshots loads the
// newest one.
func lastDocument(b []byte) []byte {
	if gjson.ValidBytes(b) {
		return b
	}
	lines := bytes.Split(bytes.TrimRight(b, "\r\n\t "), []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if l := bytes.TrimSpace(lines[i]); len(l) > 0 {
			return l
		}
	}
	return b
}

// Follow tails path and decodes every appended line as a full payload. The
// channel closes when ctx is done or the tail stops.
func Follow(ctx context.Context, path string) (<-chan Update, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return nil, err
	}
	out := make(chan Update, 16)
	go func() {
		defer close(out)
		defer t.Cleanup()
		for {
			select {
			case <-ctx.Done():
				_ = t.Stop()
				return
			case l, ok := <-t.Lines:
				if !ok {
					return
				}
				u := Update{When: time.Now()}
				if l.Err != nil {
					u.Err = l.Err
				} else if len(bytes.TrimSpace([]byte(l.Text))) == 0 {
					continue
				} else {
					u.Payload, u.Err = model.Decode([]byte(l.Text))
				}
				select {
				case out <- u:
				case <-ctx.Done():
					_ = t.Stop()
					return
				}
			}
		}
	}()
	return out, nil
}

// IsPayloadError reports whether err is an error reported by the upstream.
func IsPayloadError(err error) bool {
	var pe *model.PayloadError
	return errors.As(err, &pe)
}
