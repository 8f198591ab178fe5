package catalog

// Video is a catalog entry. Title, id and tags never change after
// construction; the flag fields are only mutated through Catalog.SetFlag.
type Video struct {
	title      string
	id         string
	tags       []string
	flagged    bool
	flagReason string
}

// NewVideo builds a video. The tags slice is copied so later changes to the
// caller's slice do not leak into the catalog.
func NewVideo(title, id string, tags []string) *Video {
	t := make([]string, len(tags))
	copy(t, tags)
	return &Video{
		title: title,
		id:    id,
		tags:  t,
	}
}

func (v *Video) Title() string { return v.title }

func (v *Video) ID() string { return v.id }

// Tags returns a copy of the video tags in their original order.
func (v *Video) Tags() []string {
	t := make([]string, len(v.tags))
	copy(t, v.tags)
	return t
}

func (v *Video) Flagged() bool { return v.flagged }

// FlagReason is empty unless the video is flagged.
func (v *Video) FlagReason() string { return v.flagReason }

func (v *Video) setFlag(flagged bool, reason string) {
	v.flagged = flagged
	v.flagReason = reason
}
