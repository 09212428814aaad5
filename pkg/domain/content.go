package domain

// Content heads understood by the bridge. Matching is case-insensitive.
const (
	HeadSpoken            = "spoken"
	HeadDisplayModel      = "display-model"
	HeadDisplayImage      = "display-image"
	HeadDisplaySBGN       = "display-sbgn"
	HeadModuleStatus      = "module-status"
	HeadStartConversation = "start-conversation"
)

// ContentKind labels a Content variant.
type ContentKind string

const (
	KindSpoken       ContentKind = "spoken"
	KindDisplayModel ContentKind = "display_model"
	KindUnknown      ContentKind = "unknown"
)

// Content is the decoded payload of a performative's :content field.
// The set of variants is closed: Spoken, DisplayModel and Unknown.
type Content interface {
	Kind() ContentKind
	isContent()
}

// Spoken carries an utterance relayed by the dialogue manager.
type Spoken struct {
	What string
}

// DisplayModel carries an encoded statement collection to draw.
type DisplayModel struct {
	Model string
}

// Unknown is any content head the bridge does not act on.
type Unknown struct {
	Head string
}

func (Spoken) Kind() ContentKind       { return KindSpoken }
func (DisplayModel) Kind() ContentKind { return KindDisplayModel }
func (Unknown) Kind() ContentKind      { return KindUnknown }

func (Spoken) isContent()       {}
func (DisplayModel) isContent() {}
func (Unknown) isContent()      {}
