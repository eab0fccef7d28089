package export

import "github.com/matillion/slack-channel-export/internal/jst"

// Build assembles the final document. Pure: no I/O, no network. Nil inputs
// are normalized so the JSON schema stays stable for empty exports.
func Build(r jst.Range, msgs []Message, users map[string]UserProfile) Document {
	if msgs == nil {
		msgs = []Message{}
	}
	if users == nil {
		users = map[string]UserProfile{}
	}
	return Document{
		StartDate: r.StartReadable(),
		EndDate:   r.EndReadable(),
		Users:     users,
		Chat:      msgs,
	}
}
