package adapter

// Role identifies which of the four pipeline stages an adapter serves.
type Role uint8

const (
	// RoleInput supplies bytes to the pipeline.
	RoleInput Role = 0x1
	// RoleOutput consumes bytes from the pipeline.
	RoleOutput Role = 0x2
	// RoleParse decodes input bytes into a node tree.
	RoleParse Role = 0x3
	// RoleSerialize encodes a node tree into output bytes.
	RoleSerialize Role = 0x4
)

// String returns a human-readable role name.
func (r Role) String() string {
	switch r {
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleParse:
		return "parse"
	case RoleSerialize:
		return "serialize"
	default:
		return "unknown"
	}
}
