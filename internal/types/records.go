package types

// Record is satisfied by every catalog record type.
type Record interface {
	RecordName() string
}

// CharacterRecord is one hero of the roster. Name is the unique key and is
// carried by the enclosing response object, not the record body.
type CharacterRecord struct {
	Name         string   `json:"-"`
	Faction      string   `json:"阵营"`
	CommandValue float64  `json:"统御"`
	Tags         []string `json:"标签"`
}

// RecordName implements Record.
func (r CharacterRecord) RecordName() string { return r.Name }

// AbilityRecord is one skill. Its name may change through an edit, so edits
// address the record by the name it had when the editor was opened.
type AbilityRecord struct {
	Name               string `json:"名称"`
	Kind               string `json:"类型"`
	Rarity             string `json:"品质"`
	TriggerProbability string `json:"发动概率"`
	Description        string `json:"描述"`
}

// RecordName implements Record.
func (r AbilityRecord) RecordName() string { return r.Name }
