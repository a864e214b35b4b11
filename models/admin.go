package models

// AdminProfile is the cached back-office user profile. The upstream login and
// profile responses are not guaranteed to share a shape, so it is populated
// field by field from whatever keys are present.
type AdminProfile struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// ProfileFromMap builds an AdminProfile from a decoded JSON object, trying the
// key spellings the upstream has been observed to use. Missing keys leave the
// field empty.
func ProfileFromMap(m map[string]interface{}) AdminProfile {
	if m == nil {
		return AdminProfile{}
	}
	return AdminProfile{
		ID:        firstString(m, "id", "_id", "userId", "adminId"),
		FirstName: firstString(m, "firstName", "first_name"),
		LastName:  firstString(m, "lastName", "last_name"),
		Name:      firstString(m, "name", "fullName", "full_name"),
		Email:     firstString(m, "email"),
		Role:      firstString(m, "role", "userRole"),
		Avatar:    firstString(m, "avatar", "profilePhoto", "profile_photo", "photoUrl", "image"),
	}
}

// DisplayName prefers the explicit name, then first+last, then email.
func (p AdminProfile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.FirstName != "" && p.LastName != "" {
		return p.FirstName + " " + p.LastName
	}
	if p.FirstName != "" {
		return p.FirstName
	}
	return p.Email
}

func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
