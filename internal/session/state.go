package session

// State is a step of a sort run.
//
//	Init -> DirectoriesReady -> FilesListed -> [abort if empty] -> FileSelected
//	  -> DatasetLoaded -> ColumnsDisplayed -> ColumnSelected -> ModeSelected
//	  -> Sorted -> Written -> Done
//
// Invalid input loops inside a state; every failure jumps straight to Done.
type State int

const (
	StateInit State = iota
	StateDirectoriesReady
	StateFilesListed
	StateFileSelected
	StateDatasetLoaded
	StateColumnsDisplayed
	StateColumnSelected
	StateModeSelected
	StateSorted
	StateWritten
	StateDone
)

var stateNames = [...]string{
	StateInit:             "Init",
	StateDirectoriesReady: "DirectoriesReady",
	StateFilesListed:      "FilesListed",
	StateFileSelected:     "FileSelected",
	StateDatasetLoaded:    "DatasetLoaded",
	StateColumnsDisplayed: "ColumnsDisplayed",
	StateColumnSelected:   "ColumnSelected",
	StateModeSelected:     "ModeSelected",
	StateSorted:           "Sorted",
	StateWritten:          "Written",
	StateDone:             "Done",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
