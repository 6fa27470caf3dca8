package field

// Import paths required by the Go types that leaf descriptors render to.
const (
	pkgUUID    = "github.com/google/uuid"
	pkgDecimal = "github.com/shopspring/decimal"
	pkgTypes   = "github.com/syssam/autostruct/types"
)

// pkgPaths maps leaf descriptors to the import path their Go type lives in.
// Descriptors absent from the table render to builtin types.
var pkgPaths = map[Type]string{
	TypeDecimal:     pkgDecimal,
	TypeDate:        "time",
	TypeTime:        "time",
	TypeTimeTZ:      "time",
	TypeTimestamp:   "time",
	TypeTimestampTZ: "time",
	TypeUUID:        pkgUUID,
	TypeJSON:        "encoding/json",
	TypeIPNet:       "net/netip",
	TypeMAC:         "net",
	TypeBits:        pkgTypes,
	TypeInterval:    "time",
	TypeMoney:       pkgTypes,
	TypeTSQuery:     pkgTypes,
	TypeTSVector:    pkgTypes,
}

// PkgPaths returns the import paths the descriptor requires, applied
// recursively through wrapper descriptors down to their leaf. The result may
// contain duplicates; deduplication happens at snippet finalization.
func (t *TypeInfo) PkgPaths() []string {
	switch t.Type {
	case TypeNullable, TypeSlice:
		return t.Elem.PkgPaths()
	case TypeRange:
		return append([]string{pkgTypes}, t.Elem.PkgPaths()...)
	case TypeCustom:
		return nil
	default:
		if p, ok := pkgPaths[t.Type]; ok {
			return []string{p}
		}
		return nil
	}
}
