package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gosimple/slug"
)

// ObjectPutter stores a blob under a key; utils.R2Client implements it.
type ObjectPutter interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// ArchiveSink keeps a JSON copy of every notification in object storage.
type ArchiveSink struct {
	store  ObjectPutter
	prefix string
}

func NewArchiveSink(store ObjectPutter, prefix string) *ArchiveSink {
	if prefix == "" {
		prefix = "notifications"
	}
	return &ArchiveSink{store: store, prefix: prefix}
}

func (s *ArchiveSink) Name() string { return "archive" }

func (s *ArchiveSink) Send(ctx context.Context, n Notification) error {
	body, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := s.store.PutObject(ctx, s.Key(n), body, "application/json"); err != nil {
		return fmt.Errorf("archive notification: %w", err)
	}
	return nil
}

// Key builds e.g. notifications/registration/2026/10/16/team-alpha-<id>.json.
func (s *ArchiveSink) Key(n Notification) string {
	name := slug.Make(n.Label)
	if name == "" {
		name = "untitled"
	}
	return fmt.Sprintf("%s/%s/%s/%s-%s.json",
		s.prefix, n.Kind, n.CreatedAt.UTC().Format("2006/01/02"), name, n.RecordID)
}
