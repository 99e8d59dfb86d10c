package attachment

import "fmt"

// Staged is a file held in the set with its preview handle.
type Staged struct {
	File       File
	PreviewURL string
}

// Rejection pairs a refused file with the reason.
type Rejection struct {
	File File
	Err  error
}

// Option configures a Set.
type Option func(*Set)

// WithLimit overrides the per-file cap. Non-positive values are ignored.
func WithLimit(limit int64) Option {
	return func(s *Set) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithPreviews overrides the preview registry.
func WithPreviews(p Previews) Option {
	return func(s *Set) {
		if p != nil {
			s.previews = p
		}
	}
}

// ImagesOnly rejects files whose content type is not image/*.
func ImagesOnly(enabled bool) Option {
	return func(s *Set) {
		s.imagesOnly = enabled
	}
}

// Set is the ordered collection of staged files. It is owned by a single
// form instance and is not safe for concurrent use.
type Set struct {
	items      []Staged
	limit      int64
	imagesOnly bool
	previews   Previews
}

// NewSet returns an empty set with the 10MB cap and an in-memory registry.
func NewSet(opts ...Option) *Set {
	s := &Set{
		limit:    MaxFileSize,
		previews: NewRegistry(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Limit reports the per-file cap in bytes.
func (s *Set) Limit() int64 {
	return s.limit
}

// Add stages every acceptable file in input order after the existing ones.
// Files above the cap (and non-images when ImagesOnly is set) are returned
// as rejections and never enter the set.
func (s *Set) Add(files ...File) ([]Staged, []Rejection) {
	var (
		accepted []Staged
		rejected []Rejection
	)
	for _, file := range files {
		if err := s.check(file); err != nil {
			rejected = append(rejected, Rejection{File: file, Err: err})
			continue
		}
		staged := Staged{
			File:       file,
			PreviewURL: s.previews.Create(file),
		}
		s.items = append(s.items, staged)
		accepted = append(accepted, staged)
	}
	return accepted, rejected
}

// Remove drops the element at index and revokes its preview. Out of range
// indexes are a no-op and report false.
func (s *Set) Remove(index int) bool {
	if index < 0 || index >= len(s.items) {
		return false
	}
	removed := s.items[index]
	s.items = append(s.items[:index:index], s.items[index+1:]...)
	s.previews.Revoke(removed.PreviewURL)
	return true
}

// Clear revokes every preview and empties the set.
func (s *Set) Clear() {
	for _, item := range s.items {
		s.previews.Revoke(item.PreviewURL)
	}
	s.items = nil
}

// Items returns a copy of the staged files in order.
func (s *Set) Items() []Staged {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Staged, len(s.items))
	copy(out, s.items)
	return out
}

// Files returns the staged files without their previews.
func (s *Set) Files() []File {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]File, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.File)
	}
	return out
}

// Len reports the number of staged files.
func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) check(file File) error {
	if file.Size > s.limit {
		return &TooLargeError{Name: file.Name, Size: file.Size, Limit: s.limit}
	}
	if s.imagesOnly && !file.IsImage() {
		return fmt.Errorf("%w: %s (%s)", ErrNotImage, file.Name, file.ContentType)
	}
	return nil
}
