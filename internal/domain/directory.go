package domain

// UserEntry is one record from the user directory input, in file order.
type UserEntry struct {
	ID       string
	Username string
}

// UserDirectory maps user ids to display names.
type UserDirectory map[string]string

// NewUserDirectory builds the lookup by walking entries in input order, so a
// duplicated id keeps the last username seen.
func NewUserDirectory(entries []UserEntry) UserDirectory {
	directory := make(UserDirectory, len(entries))
	for _, entry := range entries {
		directory[entry.ID] = entry.Username
	}

	return directory
}

// DisplayName resolves an id to its username. Ids missing from the directory
// are returned verbatim; a miss is not an error.
func (d UserDirectory) DisplayName(id string) string {
	if name, ok := d[id]; ok {
		return name
	}

	return id
}
