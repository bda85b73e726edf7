package types

// Kind names one of the four entity collections.
type Kind string

// Entity kinds.
const (
	KindAgent    Kind = "agent"
	KindClient   Kind = "client"
	KindProperty Kind = "property"
	KindContract Kind = "contract"
)

// Kinds lists every entity kind in dependency order: contracts reference
// the other three.
var Kinds = []Kind{KindAgent, KindClient, KindProperty, KindContract}

// Persistence table names.
const (
	AgentsTable     = "Agents"
	ClientsTable    = "Clients"
	PropertiesTable = "Properties"
	ContractsTable  = "Contracts"
)

var tableByKind = map[Kind]string{
	KindAgent:    AgentsTable,
	KindClient:   ClientsTable,
	KindProperty: PropertiesTable,
	KindContract: ContractsTable,
}

// Table returns the persistence table name for k, or "" for an unknown kind.
func (k Kind) Table() string {
	return tableByKind[k]
}

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	_, ok := tableByKind[k]
	return k, ok
}

// Entity is implemented by the four record types.
type Entity interface {
	EntityKind() Kind
	EntityID() int
}

// CreationMode tags which contract-creation path produced a contract.
type CreationMode string

// Contract creation paths. Direct stores the contract as given. Verified
// first checks that the property, client, and agent exist.
const (
	CreationDirect   CreationMode = "direct"
	CreationVerified CreationMode = "verified"
)
