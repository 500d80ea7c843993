package types

// ItemType identifies which kind of resource a configuration item manages.
type ItemType string

const (
	TypeFile    ItemType = "file"
	TypePackage ItemType = "package"
	TypeService ItemType = "service"
)

// Item is one declared unit of desired state. Items are applied in
// declaration order, sequentially, with no reordering or dependency
// resolution.
type Item struct {
	Type    ItemType `yaml:"type"`
	Name    string   `yaml:"name,omitempty"`
	Path    string   `yaml:"path,omitempty"`
	State   string   `yaml:"state,omitempty"`
	Content string   `yaml:"content,omitempty"`
	Owner   string   `yaml:"owner,omitempty"`
	Group   string   `yaml:"group,omitempty"`
	Mode    string   `yaml:"mode,omitempty"`
}

// Target returns the item's identifier: the file path for file items,
// the package or service name otherwise.
func (it Item) Target() string {
	if it.Type == TypeFile {
		return it.Path
	}
	return it.Name
}

// ValidStates lists the legal state values per item type. File items
// carry no state.
var ValidStates = map[ItemType][]string{
	TypePackage: {"present", "absent"},
	TypeService: {"start", "stop", "reload", "restart"},
}

// StateValid reports whether the item's state belongs to the enum for
// its type. File items always pass.
func (it Item) StateValid() bool {
	states, ok := ValidStates[it.Type]
	if !ok {
		return it.Type == TypeFile
	}
	for _, s := range states {
		if it.State == s {
			return true
		}
	}
	return false
}

// Inventory holds the list of hosts to manage.
type Inventory struct {
	Servers []Server `yaml:"servers"`
}

// Server is one connection target in the inventory.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port,omitempty"`
}

// Host is one machine plus the credentials used to reach it.
type Host struct {
	Name     string
	Port     int
	User     string
	Password string
}

// RunStatus is the terminal state of one host's run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunAborted   RunStatus = "aborted"
)

// RunOutcome records how one host's run ended. It is consumed only for
// logging and is never persisted.
type RunOutcome struct {
	Host       string
	Status     RunStatus
	Applied    int    // items applied before the run ended
	FailedItem string // target of the item that aborted the run, if any
	Err        error
}
