// SPDX-License-Identifier: GPL-3.0-or-later

package metrix

import (
	"sort"
	"strconv"
	"strings"
)

type Label struct {
	Key   string
	Value string
}

// Labels is a label set kept sorted by key with unique keys.
type Labels []Label

// LabelsFromMap builds a sorted label set. Empty keys are dropped.
func LabelsFromMap(m map[string]string) Labels {
	if len(m) == 0 {
		return nil
	}
	ls := make(Labels, 0, len(m))
	for k, v := range m {
		if k == "" {
			continue
		}
		ls = append(ls, Label{Key: k, Value: v})
	}
	sort.Slice(ls, func(i, j int) bool { return ls[i].Key < ls[j].Key })
	return ls
}

// Set adds the label or overrides the value of an existing key.
func (ls *Labels) Set(key, value string) {
	i := sort.Search(len(*ls), func(i int) bool { return (*ls)[i].Key >= key })
	if i < len(*ls) && (*ls)[i].Key == key {
		(*ls)[i].Value = value
		return
	}
	*ls = append(*ls, Label{})
	copy((*ls)[i+1:], (*ls)[i:])
	(*ls)[i] = Label{Key: key, Value: value}
}

// Merge sets every label of other, overriding existing keys.
func (ls *Labels) Merge(other Labels) {
	for _, l := range other {
		ls.Set(l.Key, l.Value)
	}
}

func (ls Labels) Get(key string) (string, bool) {
	i := sort.Search(len(ls), func(i int) bool { return ls[i].Key >= key })
	if i < len(ls) && ls[i].Key == key {
		return ls[i].Value, true
	}
	return "", false
}

func (ls Labels) Len() int { return len(ls) }

// Clone returns a copy with its own backing array.
func (ls Labels) Clone() Labels {
	if ls == nil {
		return nil
	}
	out := make(Labels, len(ls), len(ls)+4)
	copy(out, ls)
	return out
}

func (ls Labels) Map() map[string]string {
	m := make(map[string]string, len(ls))
	for _, l := range ls {
		m[l.Key] = l.Value
	}
	return m
}

// String formats the set as {k1="v1",k2="v2"}.
func (ls Labels) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range ls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(l.Value))
	}
	b.WriteByte('}')
	return b.String()
}
