package glyph

// MessageKind tells what a conversation notification means.
type MessageKind int

// Conversation outcomes.
const (
	// MessageRemoved means no participant resolved to a directory contact,
	// typically a grouped summary notification.
	MessageRemoved MessageKind = iota
	// MessageReplied means the resolved contact differs from the title: the
	// user answered and the conversation notification was reposted.
	MessageReplied
	// MessageReceived means the resolved contact matches the title.
	MessageReceived
)

func (k MessageKind) String() string {
	switch k {
	case MessageRemoved:
		return "removed"
	case MessageReplied:
		return "replied"
	case MessageReceived:
		return "received"
	default:
		return "unknown"
	}
}

// Message is a classified conversation notification.
type Message struct {
	Kind    MessageKind
	Contact string // resolved contact name, or the title for MessageRemoved
}

// Classified is the normalized form of a notification event. App and Contact
// are nil when the respective lookup missed; Message is nil when the event is
// not from a tracked conversation.
type Classified struct {
	Key     NotificationKey
	App     *Binding
	Message *Message
	Contact *Binding
}

// DefaultMessagingApps are the conversation apps inspected for contacts.
var DefaultMessagingApps = []string{
	"com.google.android.apps.messaging",
	"com.whatsapp",
	"org.telegram.messenger",
}

// DefaultIgnoredTitles are group summary titles that never name a sender.
var DefaultIgnoredTitles = []string{"WhatsApp", "Telegram"}

// Classifier turns raw notification events into zone bindings. It holds no
// mutable state.
type Classifier struct {
	apps      map[string]struct{}
	ignored   map[string]struct{}
	directory Directory
}

// NewClassifier builds a classifier. Nil slices select the defaults.
func NewClassifier(directory Directory, messagingApps, ignoredTitles []string) *Classifier {
	if messagingApps == nil {
		messagingApps = DefaultMessagingApps
	}
	if ignoredTitles == nil {
		ignoredTitles = DefaultIgnoredTitles
	}
	return &Classifier{
		apps:      toSet(messagingApps),
		ignored:   toSet(ignoredTitles),
		directory: directory,
	}
}

// ClassifyPosted classifies a posted notification against table. The second
// return is false when nothing about the event is tracked.
func (c *Classifier) ClassifyPosted(table *Table, ev PostedEvent) (Classified, bool) {
	return c.classify(table, ev.Package, ev.Key, ev.Title, ev.People)
}

// ClassifyRemoved classifies a removed notification. Message.Kind carries no
// meaning on removal; only the contact binding matters.
func (c *Classifier) ClassifyRemoved(table *Table, ev RemovedEvent) (Classified, bool) {
	return c.classify(table, ev.Package, ev.Key, ev.Title, ev.People)
}

func (c *Classifier) classify(table *Table, pkg string, key NotificationKey, title string, people []Person) (Classified, bool) {
	out := Classified{Key: key}

	if b, ok := table.LookupPackage(HashPackage(pkg)); ok {
		out.App = &b
	}

	if msg, ok := c.message(pkg, title, people); ok {
		out.Message = &msg
		if b, found := c.contactBinding(table, msg.Contact); found {
			out.Contact = &b
		}
	}

	return out, out.App != nil || out.Message != nil
}

// message decides whether a notification is a conversation event and who it
// is about.
func (c *Classifier) message(pkg, title string, people []Person) (Message, bool) {
	if _, tracked := c.apps[pkg]; !tracked {
		return Message{}, false
	}
	if title == "" {
		return Message{}, false
	}
	if _, group := c.ignored[title]; group {
		return Message{}, false
	}

	// The last participant carrying a directory reference wins, including
	// when its reference does not resolve.
	var contact string
	var resolved bool
	for _, p := range people {
		if p.URI == "" {
			continue
		}
		contact, resolved = c.lookupURI(p.URI)
	}

	switch {
	case !resolved:
		return Message{Kind: MessageRemoved, Contact: title}, true
	case contact != title:
		return Message{Kind: MessageReplied, Contact: contact}, true
	default:
		return Message{Kind: MessageReceived, Contact: title}, true
	}
}

func (c *Classifier) lookupURI(uri string) (string, bool) {
	if c.directory == nil {
		return "", false
	}
	return c.directory.ContactNameForURI(uri)
}

// contactBinding returns the binding of the first contact with that name
// present in the table.
func (c *Classifier) contactBinding(table *Table, name string) (Binding, bool) {
	if c.directory == nil || name == "" {
		return Binding{}, false
	}
	for _, id := range c.directory.ContactIDsForName(name) {
		if b, ok := table.LookupContact(id); ok {
			return b, true
		}
	}
	return Binding{}, false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
