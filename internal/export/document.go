// Package export defines the archive document written for one channel run
// and the assembly and persistence steps that produce it.
package export

import "sort"

// ThreadReply is one reply inside a message's thread, root excluded.
type ThreadReply struct {
	Timestamp    string `json:"timestamp"`
	ReadableTime string `json:"readable_time"`
	User         string `json:"user"`
	Text         string `json:"text"`
}

// Message is a top-level channel message with its thread replies in
// chronological order. ThreadReplies is always non-nil so it marshals as [].
type Message struct {
	Timestamp     string        `json:"timestamp"`
	ReadableTime  string        `json:"readable_time"`
	User          string        `json:"user"`
	Text          string        `json:"text"`
	ThreadReplies []ThreadReply `json:"thread_replies"`
}

// UserProfile holds the display metadata resolved for one user ID.
type UserProfile struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Document is the complete archive for one export run. Chat is ordered
// oldest to newest; every user ID referenced in Chat has an entry in Users.
type Document struct {
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Users     map[string]UserProfile `json:"users"`
	Chat      []Message              `json:"chat"`
}

// UserIDs returns the distinct user IDs referenced by msgs and their thread
// replies, sorted for deterministic lookup order. Empty IDs are skipped.
func UserIDs(msgs []Message) []string {
	seen := make(map[string]bool)
	for _, msg := range msgs {
		if msg.User != "" {
			seen[msg.User] = true
		}
		for _, reply := range msg.ThreadReplies {
			if reply.User != "" {
				seen[reply.User] = true
			}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
