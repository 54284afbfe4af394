package store

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ssargent/venuedb/pkg/grid"
	"github.com/ssargent/venuedb/pkg/storage"
	"github.com/ssargent/venuedb/pkg/venue"
)

// VenueStore owns the venue collection and the seat grids derived from it.
// Every mutation rewrites the whole data file before it returns; when the
// write fails the collection is rolled back to its state before the call.
//
// A VenueStore is not safe for concurrent use. Venues and seats returned by
// its methods belong to the store and stay valid until the next mutation.
type VenueStore struct {
	config    Config
	logger    *logrus.Logger
	file      *DataFile
	venues    []*venue.Venue // ordered by id
	grids     map[int32]*grid.Grid
	capacity  *capacityIndex
	snapshots *storage.SnapshotStorage
	isOpen    bool
}

// NewVenueStore creates a venue store instance. A nil logger discards output.
func NewVenueStore(config Config, logger *logrus.Logger) (*VenueStore, error) {
	if config.DataDir == "" {
		return nil, fmt.Errorf("%w: data directory is required", ErrInvalidInput)
	}
	if config.DataFile == "" {
		config.DataFile = DefaultDataFile
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	file, err := NewDataFile(DataFileConfig{
		FilePath:   filepath.Join(config.DataDir, config.DataFile),
		BufferSize: config.BufferSize,
	})
	if err != nil {
		return nil, err
	}

	return &VenueStore{
		config:   config,
		logger:   logger,
		file:     file,
		grids:    make(map[int32]*grid.Grid),
		capacity: newCapacityIndex(nil),
	}, nil
}

// Open loads the data file and, when configured, the snapshot archive
func (s *VenueStore) Open() (*LoadResult, error) {
	if s.isOpen {
		return &LoadResult{}, nil
	}

	result, err := s.load()
	if err != nil {
		return nil, err
	}

	if s.config.SnapshotDir != "" {
		snapshots, err := storage.NewSnapshotStorage(s.config.SnapshotDir)
		if err != nil {
			return nil, err
		}
		s.snapshots = snapshots
	}

	s.isOpen = true
	s.logger.WithFields(logrus.Fields{
		"path":   s.file.Path(),
		"venues": result.Venues,
		"seats":  result.Seats,
		"bytes":  result.Bytes,
	}).Info("venue store opened")
	return result, nil
}

// Close releases the snapshot archive. The data file is already durable.
func (s *VenueStore) Close() error {
	if !s.isOpen {
		return nil
	}
	s.isOpen = false

	if s.snapshots != nil {
		err := s.snapshots.Close()
		s.snapshots = nil
		return err
	}
	return nil
}

// Load re-reads the data file. On any read or decode failure the in-memory
// collection is left untouched.
func (s *VenueStore) Load() (*LoadResult, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	return s.load()
}

func (s *VenueStore) load() (*LoadResult, error) {
	start := time.Now()

	data, err := s.file.Read()
	if err != nil {
		s.logger.WithError(err).WithField("path", s.file.Path()).Error("failed to read data file")
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	venues, err := decodeVenues(data)
	if err != nil {
		s.logger.WithError(err).WithField("path", s.file.Path()).Error("failed to decode data file")
		return nil, fmt.Errorf("failed to decode data file: %w", err)
	}

	s.install(venues)

	result := &LoadResult{
		Venues:   len(venues),
		Bytes:    int64(len(data)),
		Duration: time.Since(start),
	}
	for _, v := range venues {
		result.Seats += len(v.Seats)
	}
	return result, nil
}

// Save writes the whole collection to the data file
func (s *VenueStore) Save() error {
	if !s.isOpen {
		return ErrNotOpen
	}
	return s.save()
}

func (s *VenueStore) save() error {
	data := venue.Marshal(s.venues)
	if err := s.file.Write(data); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	s.logger.WithField("bytes", len(data)).Debug("data file written")
	return nil
}

func decodeVenues(data []byte) ([]*venue.Venue, error) {
	if len(data) == 0 {
		return []*venue.Venue{}, nil
	}
	return venue.Unmarshal(data)
}

// install replaces the collection and rebuilds every derived index
func (s *VenueStore) install(venues []*venue.Venue) {
	sort.SliceStable(venues, func(i, j int) bool { return venues[i].ID < venues[j].ID })

	s.venues = venues
	s.grids = make(map[int32]*grid.Grid, len(venues))
	for _, v := range venues {
		s.rebuildGrid(v)
	}
	s.capacity = newCapacityIndex(venues)
}

// rebuildGrid discards and rebuilds the grid of v from its seat labels
func (s *VenueStore) rebuildGrid(v *venue.Venue) {
	delete(s.grids, v.ID)
	if !v.HasPlan() {
		return
	}
	g, err := grid.Build(int(v.Rows), int(v.Columns), v.Seats)
	if err != nil {
		return
	}
	s.grids[v.ID] = g
}

func (s *VenueStore) checkpoint() []byte {
	return venue.Marshal(s.venues)
}

// commit persists a mutation, rolling back to checkpoint if the write fails
func (s *VenueStore) commit(checkpoint []byte, op string, fields logrus.Fields) error {
	entry := s.logger.WithFields(fields).WithField("op", op)

	if err := s.save(); err != nil {
		venues, decodeErr := venue.Unmarshal(checkpoint)
		if decodeErr != nil {
			entry.WithError(decodeErr).Error("failed to restore checkpoint")
			return err
		}
		s.install(venues)
		entry.WithError(err).Warn("mutation rolled back")
		return err
	}

	entry.Debug("mutation committed")
	return nil
}

func (s *VenueStore) find(id int32) (*venue.Venue, int) {
	i := sort.Search(len(s.venues), func(i int) bool { return s.venues[i].ID >= id })
	if i < len(s.venues) && s.venues[i].ID == id {
		return s.venues[i], i
	}
	return nil, -1
}

func (s *VenueStore) lookup(id int32) (*venue.Venue, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	v, _ := s.find(id)
	if v == nil {
		return nil, fmt.Errorf("%w: %d", ErrVenueNotFound, id)
	}
	return v, nil
}

// CreateVenue adds a venue under the next unused id
func (s *VenueStore) CreateVenue(input VenueInput) (*venue.Venue, error) {
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	if input.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	var id int32 = 1
	if n := len(s.venues); n > 0 {
		id = s.venues[n-1].ID + 1
	}

	v := &venue.Venue{
		ID:          id,
		Name:        input.Name,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Zip:         input.Zip,
		Country:     input.Country,
		Capacity:    input.Capacity,
		Description: input.Description,
		Contact:     input.Contact,
		Seatmap:     input.Seatmap,
		Seats:       []*venue.Seat{},
	}

	checkpoint := s.checkpoint()
	s.venues = append(s.venues, v)
	s.capacity.add(v.Capacity, v.ID)

	if err := s.commit(checkpoint, "create_venue", logrus.Fields{"venue_id": id}); err != nil {
		return nil, err
	}
	return v, nil
}

// GetVenueByID returns the venue with the given id
func (s *VenueStore) GetVenueByID(id int32) (*venue.Venue, bool) {
	if !s.isOpen {
		return nil, false
	}
	v, _ := s.find(id)
	return v, v != nil
}

// ListVenues returns every venue ordered by id
func (s *VenueStore) ListVenues() []*venue.Venue {
	return append([]*venue.Venue{}, s.venues...)
}

// FindByName returns venues whose name contains name, ignoring case
func (s *VenueStore) FindByName(name string) []*venue.Venue {
	needle := strings.ToLower(name)
	return s.filter(func(v *venue.Venue) bool {
		return strings.Contains(strings.ToLower(v.Name), needle)
	})
}

// FindByCity returns venues in city, ignoring case
func (s *VenueStore) FindByCity(city string) []*venue.Venue {
	return s.filter(func(v *venue.Venue) bool {
		return strings.EqualFold(v.City, city)
	})
}

// FindByCapacity returns venues holding at least min people, smallest first
func (s *VenueStore) FindByCapacity(min int32) []*venue.Venue {
	return s.resolve(s.capacity.atLeast(min))
}

// FindByCapacityRange returns venues with min <= capacity <= max, smallest first
func (s *VenueStore) FindByCapacityRange(min, max int32) []*venue.Venue {
	return s.resolve(s.capacity.between(min, max))
}

func (s *VenueStore) filter(match func(*venue.Venue) bool) []*venue.Venue {
	out := []*venue.Venue{}
	for _, v := range s.venues {
		if match(v) {
			out = append(out, v)
		}
	}
	return out
}

func (s *VenueStore) resolve(ids []int32) []*venue.Venue {
	out := make([]*venue.Venue, 0, len(ids))
	for _, id := range ids {
		if v, _ := s.find(id); v != nil {
			out = append(out, v)
		}
	}
	return out
}

// UpdateVenue applies the non-nil fields of update. An empty update
// succeeds without changing anything.
func (s *VenueStore) UpdateVenue(id int32, update VenueUpdate) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	if update.Capacity != nil && *update.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	checkpoint := s.checkpoint()

	setString(&v.Name, update.Name)
	setString(&v.Address, update.Address)
	setString(&v.City, update.City)
	setString(&v.State, update.State)
	setString(&v.Zip, update.Zip)
	setString(&v.Country, update.Country)
	setString(&v.Description, update.Description)
	setString(&v.Contact, update.Contact)
	setString(&v.Seatmap, update.Seatmap)
	if update.Capacity != nil && *update.Capacity != v.Capacity {
		s.capacity.remove(v.Capacity, v.ID)
		v.Capacity = *update.Capacity
		s.capacity.add(v.Capacity, v.ID)
	}

	return s.commit(checkpoint, "update_venue", logrus.Fields{"venue_id": id})
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// DeleteVenue removes the venue together with its seats and grid
func (s *VenueStore) DeleteVenue(id int32) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	_, i := s.find(id)

	checkpoint := s.checkpoint()
	s.venues = append(s.venues[:i:i], s.venues[i+1:]...)
	delete(s.grids, id)
	s.capacity.remove(v.Capacity, v.ID)

	return s.commit(checkpoint, "delete_venue", logrus.Fields{"venue_id": id, "seats": len(v.Seats)})
}

// Stats summarizes the collection
func (s *VenueStore) Stats() Stats {
	stats := Stats{
		Venues:    len(s.venues),
		ByStatus:  make(map[venue.SeatStatus]int),
		DataBytes: s.file.Size(),
	}
	for _, v := range s.venues {
		stats.Seats += len(v.Seats)
		for status, n := range v.StatusCounts() {
			stats.ByStatus[status] += n
		}
		if g, ok := s.grids[v.ID]; ok {
			stats.GriddedSeats += g.Len()
		}
	}
	return stats
}
