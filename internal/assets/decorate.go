package assets

import (
	"github.com/beyond-imagination/teampage/internal/model/channel"
	"github.com/beyond-imagination/teampage/internal/model/member"
)

// ResolveMessage returns a copy of the message with its asset references
// resolved: avatars to their thumbnail URLs, attached images to their
// deployable URLs.
func (r *Resolver) ResolveMessage(m channel.Message) channel.Message {
	m.Avatar = r.ResolveThumbnail(m.Avatar)
	m.Image = r.ResolveAsset(m.Image)
	m.Images = r.resolveAll(m.Images)
	return m
}

// ResolveMessages resolves a whole transcript, leaving the input intact.
func (r *Resolver) ResolveMessages(msgs []channel.Message) []channel.Message {
	out := make([]channel.Message, len(msgs))
	for i, m := range msgs {
		out[i] = r.ResolveMessage(m)
	}
	return out
}

// ResolveRecord returns a copy of a channel record with every asset
// reference in its history and presets resolved. The cached record is
// never touched.
func (r *Resolver) ResolveRecord(rec *channel.Record) channel.Record {
	out := *rec
	out.History = r.ResolveMessages(rec.History)
	if len(rec.Presets) > 0 {
		out.Presets = make([]channel.QuestionPreset, len(rec.Presets))
		for i, p := range rec.Presets {
			p.Image = r.ResolveAsset(p.Image)
			p.Images = r.resolveAll(p.Images)
			out.Presets[i] = p
		}
	}
	return out
}

// ResolveMember returns a copy of the member with its avatar resolved to
// the thumbnail URL.
func (r *Resolver) ResolveMember(m member.Member) member.Member {
	m.Avatar = r.ResolveThumbnail(m.Avatar)
	return m
}

func (r *Resolver) resolveAll(paths []string) []string {
	if len(paths) == 0 {
		return paths
	}
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = r.ResolveAsset(p)
	}
	return out
}
