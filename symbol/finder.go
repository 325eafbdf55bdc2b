package symbol

// Finder looks up definitions among a group of members
type Finder interface {
	By(criteria func(d *Definition) bool) []*Definition
	ByName(name string) []*Definition
}
