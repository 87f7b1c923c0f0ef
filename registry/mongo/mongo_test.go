package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kbukum/voxrelay/registry"
)

// fakeCollection holds a single document in memory.
type fakeCollection struct {
	doc       bson.D
	findErr   error
	updateErr error
	upserts   int
}

func (f *fakeCollection) FindOne(_ context.Context, _ any, _ ...options.Lister[options.FindOneOptions]) *mongo.SingleResult {
	if f.findErr != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, f.findErr, nil)
	}
	if f.doc == nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(f.doc, nil, nil)
}

func (f *fakeCollection) UpdateOne(_ context.Context, _, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if len(opts) == 0 {
		return nil, errors.New("expected upsert option")
	}
	set := update.(bson.D)[0].Value.(bson.D)
	f.doc = bson.D{{Key: "_id", Value: "1"}, set[0]}
	f.upserts++
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func TestStore_RoundTrip(t *testing.T) {
	coll := &fakeCollection{}
	s := newWithCollection(coll, "ngrok_url")
	ctx := context.Background()

	if _, err := s.Get(ctx); !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set(ctx, "https://abc.ngrok.app"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx)
	if err != nil || got != "https://abc.ngrok.app" {
		t.Errorf("got %q, %v", got, err)
	}
	if coll.upserts != 1 {
		t.Errorf("expected one upsert, got %d", coll.upserts)
	}
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name         string
		coll         *fakeCollection
		want         string
		wantNotFound bool
		wantErr      bool
	}{
		{"present", &fakeCollection{doc: bson.D{{Key: "ngrok_url", Value: "https://x.ngrok.app"}}}, "https://x.ngrok.app", false, false},
		{"field missing", &fakeCollection{doc: bson.D{{Key: "other", Value: "y"}}}, "", true, true},
		{"wrong type", &fakeCollection{doc: bson.D{{Key: "ngrok_url", Value: 42}}}, "", true, true},
		{"no document", &fakeCollection{}, "", true, true},
		{"server error", &fakeCollection{findErr: errors.New("server selection timeout")}, "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newWithCollection(tt.coll, "ngrok_url").Get(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, registry.ErrNotFound) != tt.wantNotFound {
				t.Errorf("ErrNotFound mismatch: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStore_SetError(t *testing.T) {
	s := newWithCollection(&fakeCollection{updateErr: errors.New("write conflict")}, "ngrok_url")
	if err := s.Set(context.Background(), "https://abc.ngrok.app"); err == nil {
		t.Error("expected error")
	}
}
