package frontend

import (
	"context"
	"sync"

	"github.com/kabbandre/pit-assignment/internal/backend/database"
)

// State is the client side copy of the image service data.
type State struct {
	Images []*database.Image
	// Image is the last image fetched by id. It is nil when none was found.
	Image *database.Image
}

// Store mirrors the service's list, get and save operations and keeps the
// latest results in its State. Mutations replace whole values.
type Store struct {
	client *Client

	mu    sync.RWMutex
	state State
}

func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		state:  State{Images: []*database.Image{}},
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	images := make([]*database.Image, len(s.state.Images))
	copy(images, s.state.Images)
	return State{Images: images, Image: s.state.Image}
}

func (s *Store) SetImages(images []*database.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Images = images
}

func (s *Store) SetImage(image *database.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Image = image
}

// GetAllImages fetches every image and commits the list. State is left
// untouched when the request fails.
func (s *Store) GetAllImages(ctx context.Context) ([]*database.Image, error) {
	images, err := s.client.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	s.SetImages(images)
	return images, nil
}

// GetOneImage fetches a single image and commits it, including a nil result.
func (s *Store) GetOneImage(ctx context.Context, id string) (*database.Image, error) {
	image, err := s.client.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	s.SetImage(image)
	return image, nil
}

// SaveImage creates an image. It does not change the state.
func (s *Store) SaveImage(ctx context.Context, fields map[string]any) (*database.Image, error) {
	return s.client.SaveImage(ctx, fields)
}
