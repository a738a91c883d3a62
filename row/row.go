// Package row implements the fixed-width row codec the B+tree core treats
// as a pluggable collaborator: the core only needs to know ROW_SIZE.
package row

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	// +1 for the null terminator, matching the C layout's char[33]/char[256].
	usernameFieldSize = UsernameSize + 1
	emailFieldSize    = EmailSize + 1

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + usernameFieldSize

	// Size is the serialized byte length of a Row: id || username || email.
	Size = idOffset + IDSize + usernameFieldSize + emailFieldSize
)

// Row is one table record: a u32 primary key plus two bounded strings.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// New validates field lengths and builds a Row.
func New(id uint32, username, email string) (Row, error) {
	if len(username) > UsernameSize {
		return Row{}, errors.Errorf("username %q exceeds %d bytes", username, UsernameSize)
	}
	if len(email) > EmailSize {
		return Row{}, errors.Errorf("email %q exceeds %d bytes", email, EmailSize)
	}
	return Row{ID: id, Username: username, Email: email}, nil
}

// Serialize writes r into dst, which must be exactly Size bytes.
func Serialize(r Row, dst []byte) error {
	if len(dst) != Size {
		return errors.Errorf("row.Serialize: dst has %d bytes, want %d", len(dst), Size)
	}
	if len(r.Username) > UsernameSize {
		return errors.Errorf("row.Serialize: username %q exceeds %d bytes", r.Username, UsernameSize)
	}
	if len(r.Email) > EmailSize {
		return errors.Errorf("row.Serialize: email %q exceeds %d bytes", r.Email, EmailSize)
	}

	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[idOffset:idOffset+IDSize], r.ID)
	copy(dst[usernameOffset:usernameOffset+usernameFieldSize], r.Username)
	copy(dst[emailOffset:emailOffset+emailFieldSize], r.Email)
	return nil
}

// Deserialize reads a Row out of src, which must be exactly Size bytes.
func Deserialize(src []byte) (Row, error) {
	if len(src) != Size {
		return Row{}, errors.Errorf("row.Deserialize: src has %d bytes, want %d", len(src), Size)
	}
	id := binary.LittleEndian.Uint32(src[idOffset : idOffset+IDSize])
	username := trimNulls(src[usernameOffset : usernameOffset+usernameFieldSize])
	email := trimNulls(src[emailOffset : emailOffset+emailFieldSize])
	return Row{ID: id, Username: username, Email: email}, nil
}

func trimNulls(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}
	return string(b[:n])
}
