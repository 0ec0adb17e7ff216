// internal/domain/rule/catalog.go
package rule

import (
	"fmt"
	"sync"
)

// ErrRuleNotFound is returned when no catalog entry matches a (category, type) pair.
var ErrRuleNotFound = fmt.Errorf("notification rule not found")

// Catalog is the in-memory table of notification rules. The entry set is
// fixed at construction; only the Enabled flag and message/condition fields
// are mutable, guarded for concurrent readers.
type Catalog struct {
	mu    sync.RWMutex
	rules []Rule
	index map[string]int // category+"/"+type -> rules index
}

// NewCatalog builds a catalog from the given rules. Passing nil loads the
// default business rule set.
func NewCatalog(rules []Rule) *Catalog {
	if rules == nil {
		rules = DefaultRules()
	}
	c := &Catalog{
		rules: make([]Rule, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	copy(c.rules, rules)
	for i, r := range c.rules {
		c.index[ruleKey(r.Category, r.Type)] = i
	}
	return c
}

func ruleKey(category, ruleType string) string {
	return category + "/" + ruleType
}

// Lookup returns the rule registered for (category, ruleType).
func (c *Catalog) Lookup(category, ruleType string) (Rule, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[ruleKey(category, ruleType)]
	if !ok {
		return Rule{}, ErrRuleNotFound
	}
	return c.rules[i], nil
}

// List returns a copy of all catalog entries.
func (c *Catalog) List() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// SetEnabled flips the enabled flag of one rule.
func (c *Catalog) SetEnabled(category, ruleType string, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[ruleKey(category, ruleType)]
	if !ok {
		return ErrRuleNotFound
	}
	c.rules[i].Enabled = enabled
	return nil
}

// Update replaces the message and condition of an existing rule. Identity
// fields (ID, Category, Type) are kept from the catalog entry.
func (c *Catalog) Update(category, ruleType string, cond Condition, msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[ruleKey(category, ruleType)]
	if !ok {
		return ErrRuleNotFound
	}
	c.rules[i].Condition = cond
	c.rules[i].Message = msg
	return nil
}

// ApplyOverrides sets enabled flags from a persisted override map keyed by
// "category/type". Unknown keys are ignored; the catalog is authoritative
// for which rules exist.
func (c *Catalog) ApplyOverrides(overrides map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, enabled := range overrides {
		if i, ok := c.index[key]; ok {
			c.rules[i].Enabled = enabled
		}
	}
}

// Overrides returns the enabled flags of all rules that differ from the
// default table, keyed by "category/type", for persistence.
func (c *Catalog) Overrides() map[string]bool {
	defaults := make(map[string]bool)
	for _, r := range DefaultRules() {
		defaults[ruleKey(r.Category, r.Type)] = r.Enabled
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]bool)
	for _, r := range c.rules {
		key := ruleKey(r.Category, r.Type)
		if def, ok := defaults[key]; !ok || def != r.Enabled {
			out[key] = r.Enabled
		}
	}
	return out
}
