package session

import (
	"context"

	"github.com/goliatone/go-resumegen/pkg/imaging"
)

// ImageResult reports how an image selection ended.
type ImageResult struct {
	RequestID uint64
	// Applied is true when the decoded image was written to the Record.
	Applied bool
	// Cleared is true when the profile image was emptied, either because the
	// selection had no data or because decoding failed.
	Cleared bool
	// Stale is true when a newer selection or clear superseded this one.
	Stale bool
	Image imaging.Image
	Err   error
}

// SelectImage decodes data in the background and writes the result to
// personal.profileImage. Only the latest request may write; older completions
// are dropped. Empty data clears the image immediately. The returned channel
// receives exactly one result.
func (s *Session) SelectImage(ctx context.Context, data []byte) <-chan ImageResult {
	out := make(chan ImageResult, 1)

	if len(data) == 0 {
		id := s.ClearImage(ctx)
		out <- ImageResult{RequestID: id, Cleared: true}
		close(out)
		return out
	}

	s.mu.Lock()
	s.imageSeq++
	id := s.imageSeq
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(out)

		img, err := s.images.Decode(ctx, data)
		out <- s.completeImage(context.WithoutCancel(ctx), id, img, err)
	}()
	return out
}

func (s *Session) completeImage(ctx context.Context, id uint64, img imaging.Image, err error) ImageResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.imageSeq {
		s.log.Debug("session: stale image discarded", "request_id", id, "latest", s.imageSeq)
		return ImageResult{RequestID: id, Stale: true, Err: err}
	}

	if err != nil {
		s.rec.Personal.ProfileImage = ""
		s.commit(ctx)
		s.log.Warn("session: image decode failed", "request_id", id, "error", err)
		return ImageResult{RequestID: id, Cleared: true, Err: err}
	}

	s.rec.Personal.ProfileImage = img.DataURI
	s.commit(ctx)
	s.log.Info("session: image applied", "request_id", id, "mime", img.MIME, "width", img.Width, "height", img.Height)
	return ImageResult{RequestID: id, Applied: true, Image: img}
}

// ClearImage empties the profile image and invalidates pending decodes. It
// returns the request id it consumed.
func (s *Session) ClearImage(ctx context.Context) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.imageSeq++
	s.rec.Personal.ProfileImage = ""
	s.commit(ctx)
	s.log.Info("session: image cleared", "request_id", s.imageSeq)
	return s.imageSeq
}
