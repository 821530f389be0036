// Copyright (c) 2026 Tamgioi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session implements the step-by-step submission form.

# Architecture

A session is a small state machine persisted in Redis under the user's
id, with a TTL so abandoned forms evaporate on their own. Each user has
at most one form in flight; starting a new one discards the old.

Input that fails validation leaves the state untouched, so the user
simply answers the same question again. The final answer auto-submits
the draft into the moderated pipeline and the session is deleted.
*/
package session

import (
	"time"

	"github.com/taibuivan/tamgioi/internal/contrib/contribution"
)

// State is one step of the submission form.
type State string

const (
	// StateChooseKind awaits "mapping" or "link".
	StateChooseKind State = "choose_kind"

	// Mapping flow: 3D episode (or "skip"), chapter list (or "skip"),
	// 2D episode (or "skip").
	StateMappingEpisode3D State = "mapping_episode_3d"
	StateMappingChapters  State = "mapping_chapters"
	StateMappingEpisode2D State = "mapping_episode_2d"

	// Link flow: target, entry number, source label, URL.
	StateLinkTarget State = "link_target"
	StateLinkNumber State = "link_number"
	StateLinkSource State = "link_source"
	StateLinkURL    State = "link_url"
)

// SkipKeyword lets the user leave an optional episode field empty.
const SkipKeyword = "skip"

// Draft accumulates the answers given so far.
type Draft struct {
	Kind      contribution.Kind       `json:"kind,omitempty"`
	Chapters  []int                   `json:"chapters,omitempty"`
	Episode3D *int                    `json:"episode_3d,omitempty"`
	Episode2D *int                    `json:"episode_2d,omitempty"`
	Target    contribution.TargetKind `json:"target,omitempty"`
	Number    int                     `json:"number,omitempty"`
	Source    string                  `json:"source,omitempty"`
	URL       string                  `json:"url,omitempty"`
}

// Session is one user's in-progress submission form.
type Session struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	State     State     `json:"state"`
	Draft     Draft     `json:"draft"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Prompt returns the question the current state is asking. Transports
// surface it verbatim.
func (s *Session) Prompt() string {
	switch s.State {
	case StateChooseKind:
		return "What are you contributing? Reply 'mapping' or 'link'."
	case StateMappingEpisode3D:
		return "Which 3D episode? Reply a number, or 'skip'."
	case StateMappingChapters:
		return "Which chapters? Reply a list like '12,13', a range like '121-123', or 'skip'."
	case StateMappingEpisode2D:
		return "Which 2D episode? Reply a number, or 'skip'."
	case StateLinkTarget:
		return "What does the link point at? Reply 'chapter', 'episode_3d' or 'episode_2d'."
	case StateLinkNumber:
		return "Which number is it for?"
	case StateLinkSource:
		return "What is the source called?"
	case StateLinkURL:
		return "Paste the URL."
	default:
		return ""
	}
}
