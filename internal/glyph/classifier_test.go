package glyph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const (
	whatsapp = "com.whatsapp"
	telegram = "org.telegram.messenger"
	calendar = "com.google.android.calendar"
)

func classifierFixture(t *testing.T) (*Classifier, *Table) {
	t.Helper()

	dir := fakeDirectory{
		names: map[string]string{
			"content://contacts/1": "Alice",
			"content://contacts/2": "Bob",
		},
		ids: map[string][]ContactID{
			"Alice": {10, 11},
			"Bob":   {20},
		},
	}
	table, err := NewTable([]MappingEntry{
		{Zone: 1, Packages: []PackageID{HashPackage(whatsapp)}},
		{Zone: 2, Packages: []PackageID{HashPackage(calendar)}},
		{Zone: 4, Contacts: []ContactID{11}, Pulse: true},
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return NewClassifier(dir, nil, nil), table
}

func TestClassifier_Message(t *testing.T) {
	c, _ := classifierFixture(t)

	tests := []struct {
		name   string
		pkg    string
		title  string
		people []Person
		want   *Message
	}{
		{
			name:   "untracked app",
			pkg:    calendar,
			title:  "Alice",
			people: []Person{{URI: "content://contacts/1"}},
		},
		{
			name:  "empty title",
			pkg:   whatsapp,
			title: "",
		},
		{
			name:   "group summary title",
			pkg:    whatsapp,
			title:  "WhatsApp",
			people: []Person{{URI: "content://contacts/1"}},
		},
		{
			name:   "received",
			pkg:    whatsapp,
			title:  "Alice",
			people: []Person{{Name: "Alice", URI: "content://contacts/1"}},
			want:   &Message{Kind: MessageReceived, Contact: "Alice"},
		},
		{
			name:   "replied",
			pkg:    telegram,
			title:  "Alice",
			people: []Person{{Name: "Me"}, {Name: "Bob", URI: "content://contacts/2"}},
			want:   &Message{Kind: MessageReplied, Contact: "Bob"},
		},
		{
			name:   "no resolvable participant",
			pkg:    whatsapp,
			title:  "Alice",
			people: []Person{{Name: "Alice"}},
			want:   &Message{Kind: MessageRemoved, Contact: "Alice"},
		},
		{
			name:  "last participant with uri wins even unresolved",
			pkg:   whatsapp,
			title: "Alice",
			people: []Person{
				{Name: "Alice", URI: "content://contacts/1"},
				{Name: "Ghost", URI: "content://contacts/404"},
				{Name: "NoRef"},
			},
			want: &Message{Kind: MessageRemoved, Contact: "Alice"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := c.message(tt.pkg, tt.title, tt.people)
			if tt.want == nil {
				if ok {
					t.Fatalf("message() = %+v, want not a message", msg)
				}
				return
			}
			if !ok {
				t.Fatal("message() reported not a message")
			}
			if diff := cmp.Diff(*tt.want, msg); diff != "" {
				t.Errorf("message() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifier_ClassifyPosted(t *testing.T) {
	c, table := classifierFixture(t)

	tests := []struct {
		name   string
		ev     PostedEvent
		wantOK bool
		want   Classified
	}{
		{
			name: "unmapped untracked app",
			ev:   PostedEvent{Package: "com.example.unknown", Key: "k0", Title: "hi"},
		},
		{
			name:   "mapped app only",
			ev:     PostedEvent{Package: calendar, Key: "k1", Title: "Standup"},
			wantOK: true,
			want:   Classified{Key: "k1", App: &Binding{Zone: 2}},
		},
		{
			name: "app and contact binding",
			ev: PostedEvent{
				Package: whatsapp,
				Key:     "k2",
				Title:   "Alice",
				People:  []Person{{URI: "content://contacts/1"}},
			},
			wantOK: true,
			want: Classified{
				Key:     "k2",
				App:     &Binding{Zone: 1},
				Message: &Message{Kind: MessageReceived, Contact: "Alice"},
				Contact: &Binding{Zone: 4, Pulse: true},
			},
		},
		{
			name: "tracked app without mapping still yields a message",
			ev: PostedEvent{
				Package: telegram,
				Key:     "k3",
				Title:   "Bob",
				People:  []Person{{URI: "content://contacts/2"}},
			},
			wantOK: true,
			want: Classified{
				Key:     "k3",
				Message: &Message{Kind: MessageReceived, Contact: "Bob"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ClassifyPosted(table, tt.ev)
			if ok != tt.wantOK {
				t.Fatalf("ClassifyPosted() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ClassifyPosted() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifier_CustomLists(t *testing.T) {
	dir := fakeDirectory{names: map[string]string{"u": "Carol"}}
	c := NewClassifier(dir, []string{"org.example.chat"}, []string{"Chat"})

	if _, ok := c.message(whatsapp, "Carol", []Person{{URI: "u"}}); ok {
		t.Error("default apps should not apply when a custom list is given")
	}
	if _, ok := c.message("org.example.chat", "Chat", []Person{{URI: "u"}}); ok {
		t.Error("custom ignored title should be skipped")
	}
	msg, ok := c.message("org.example.chat", "Carol", []Person{{URI: "u"}})
	if !ok || msg.Kind != MessageReceived {
		t.Errorf("message() = %+v, %v; want received", msg, ok)
	}
}

func TestClassifier_NilDirectory(t *testing.T) {
	c := NewClassifier(nil, nil, nil)
	table, _ := NewTable(nil)

	got, ok := c.ClassifyPosted(table, PostedEvent{
		Package: whatsapp,
		Key:     "k",
		Title:   "Alice",
		People:  []Person{{URI: "content://contacts/1"}},
	})
	if !ok {
		t.Fatal("tracked conversation should still classify")
	}
	if got.Message.Kind != MessageRemoved || got.Contact != nil {
		t.Errorf("ClassifyPosted() = %+v, want removed with no contact", got)
	}
}

func TestMessageKind_String(t *testing.T) {
	for kind, want := range map[MessageKind]string{
		MessageRemoved:  "removed",
		MessageReplied:  "replied",
		MessageReceived: "received",
		MessageKind(9):  "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("MessageKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
