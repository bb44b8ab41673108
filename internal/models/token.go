package models

// Claims is the identity payload carried inside an access token.
// Username and email are convenience display fields; authorization
// decisions only ever look at Sub and Role.
type Claims struct {
	Sub      string `json:"sub"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	IssuedAt int64  `json:"iat"`
	Expires  int64  `json:"exp"`
}

// Principal is the per-request authenticated identity derived from a
// verified token. It lives only for the duration of one request.
type Principal struct {
	SubjectID string
	Role      Role
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
