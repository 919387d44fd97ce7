package domain

// VoterRef identifies who is voting: either an authenticated Discord user or
// an anonymous per-session token. Exactly one field is populated; the
// omitempty tags reproduce the wire shape where the unused field is absent
// entirely (there is no discriminant field in the protocol).
type VoterRef struct {
	DiscordUsername string `json:"discord_username,omitempty"`
	SessionID       string `json:"session_id,omitempty"`
}

// AuthenticatedVoter builds a VoterRef for a signed-in Discord user.
func AuthenticatedVoter(username string) VoterRef {
	return VoterRef{DiscordUsername: username}
}

// AnonymousVoter builds a VoterRef for a per-session identifier.
func AnonymousVoter(sessionID string) VoterRef {
	return VoterRef{SessionID: sessionID}
}

// IsZero reports whether no identity is present.
func (v VoterRef) IsZero() bool {
	return v.DiscordUsername == "" && v.SessionID == ""
}

// Valid reports whether exactly one identity field is populated.
func (v VoterRef) Valid() bool {
	return (v.DiscordUsername != "") != (v.SessionID != "")
}

// Key returns the stable identifier used for vote deduplication and for the
// /pins/votes/{voterId} path segment.
func (v VoterRef) Key() string {
	if v.DiscordUsername != "" {
		return v.DiscordUsername
	}
	return v.SessionID
}

// Authenticated reports whether the ref carries a Discord username.
func (v VoterRef) Authenticated() bool {
	return v.DiscordUsername != ""
}
