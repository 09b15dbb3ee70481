package payments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/regdesk/internal/registrations"
	"github.com/JaimeStill/regdesk/pkg/logging"
	"github.com/JaimeStill/regdesk/pkg/storage"
	"github.com/google/uuid"
)

type fakeRecords struct {
	mu        sync.Mutex
	regs      map[uuid.UUID]*registrations.Registration
	findErr   error
	lookupErr error
	attachErr error
	// refreshErr fails every Find made after a proof was attached.
	refreshErr error

	finds    int
	lookups  int
	attaches []registrations.ProofCommand
}

func newFakeRecords(regs ...*registrations.Registration) *fakeRecords {
	f := &fakeRecords{regs: make(map[uuid.UUID]*registrations.Registration)}
	for _, r := range regs {
		f.regs[r.ID] = r
	}
	return f
}

func (f *fakeRecords) Find(_ context.Context, id uuid.UUID) (*registrations.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++

	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.refreshErr != nil && len(f.attaches) > 0 {
		return nil, f.refreshErr
	}
	r, ok := f.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeRecords) FindByReference(_ context.Context, utr string) (*registrations.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++

	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, r := range f.regs {
		if r.Reference() == utr {
			c := *r
			return &c, nil
		}
	}
	return nil, registrations.ErrNotFound
}

func (f *fakeRecords) AttachProof(_ context.Context, id uuid.UUID, cmd registrations.ProofCommand) (*registrations.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attaches = append(f.attaches, cmd)

	if f.attachErr != nil {
		return nil, f.attachErr
	}
	r, ok := f.regs[id]
	if !ok {
		return nil, registrations.ErrNotFound
	}
	if r.HasProof() {
		return nil, registrations.ErrProofAttached
	}
	loc, ref := cmd.PaymentScreenshot, cmd.UTRNumber
	r.PaymentScreenshot, r.UTRNumber = &loc, &ref
	c := *r
	return &c, nil
}

func (f *fakeRecords) attachCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attaches)
}

func (f *fakeRecords) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds + f.lookups + len(f.attaches)
}

type fakeObjects struct {
	mu        sync.Mutex
	objects   map[string][]byte
	createErr error
	creates   int
	// entered and gate, when set, block Create until gate is closed.
	entered chan struct{}
	gate    chan struct{}
	// rendezvous, when set, holds each Create until every party has arrived.
	rendezvous *sync.WaitGroup
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: make(map[string][]byte)}
}

func (f *fakeObjects) Create(ctx context.Context, key string, data []byte) error {
	if f.gate != nil {
		close(f.entered)
		<-f.gate
	}
	if f.rendezvous != nil {
		f.rendezvous.Done()
		f.rendezvous.Wait()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++

	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.objects[key]; ok {
		return storage.ErrExists
	}
	f.objects[key] = data
	return nil
}

func (f *fakeObjects) PublicURL(key string) string {
	return "https://cdn.test/" + key
}

func (f *fakeObjects) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates
}

// pngBytes returns n bytes starting with the PNG signature.
func pngBytes(n int) []byte {
	sig := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	if n < len(sig) {
		n = len(sig)
	}
	data := make([]byte, n)
	copy(data, sig)
	return data
}

func validProof() ProofFile {
	return ProofFile{Filename: "receipt.jpg", ContentType: "image/jpeg", Data: pngBytes(2048)}
}

func testConfig(t testing.TB) Config {
	t.Helper()
	var cfg Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	return cfg
}

type fixture struct {
	svc     *service
	records *fakeRecords
	objects *fakeObjects
	reg     *registrations.Registration
}

func newFixture(t testing.TB, others ...*registrations.Registration) *fixture {
	t.Helper()

	reg := &registrations.Registration{ID: uuid.New(), TeamName: "Null Pointers"}
	records := newFakeRecords(append([]*registrations.Registration{reg}, others...)...)
	objects := newFakeObjects()

	svc := New(records, objects, testConfig(t), logging.Discard()).(*service)

	tick := time.UnixMilli(1_700_000_000_000)
	var mu sync.Mutex
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Millisecond)
		return tick
	}

	return &fixture{svc: svc, records: records, objects: objects, reg: reg}
}

func withReference(ref string) *registrations.Registration {
	loc := "https://cdn.test/screenshots/other.png"
	return &registrations.Registration{
		ID:                uuid.New(),
		TeamName:          "Other Team",
		PaymentScreenshot: &loc,
		UTRNumber:         &ref,
	}
}
