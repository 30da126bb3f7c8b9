// Package dedup collapses listings of the same office into one record.
//
// Directory sites list an office once per notary working there. Those
// listings share address, phone and mail; the one whose name matches the
// shared mailbox is kept as the office's primary contact.
package dedup

import (
	"cmp"
	"slices"
	"strings"

	"notary-crawler/internal/domain"
	"notary-crawler/internal/scrape/util"
)

type Options struct {
	// CaseInsensitive compares a name's first word and the mail local-part
	// with strings.EqualFold instead of exact equality.
	CaseInsensitive bool
}

// KeyOf derives the identity key of n, phone in canonical form.
func KeyOf(n domain.Notary) domain.Key {
	return domain.Key{
		Address: n.Address,
		Phone:   util.FormatPhone(n.Phone),
		Mail:    n.Mail,
	}
}

// Group buckets records by identity key. Keys come back in first-seen order
// and each group keeps input order.
func Group(in []domain.Notary) ([]domain.Key, map[domain.Key][]domain.Notary) {
	var keys []domain.Key
	groups := make(map[domain.Key][]domain.Notary)
	for _, n := range in {
		k := KeyOf(n)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], n)
	}
	return keys, groups
}

// NameMatchesMail reports whether the first word of n.Name equals the part of
// n.Mail before '@'. A blank name never matches.
func NameMatchesMail(n domain.Notary, opts Options) bool {
	first := util.FirstToken(n.Name)
	if first == "" {
		return false
	}
	local := util.LocalPart(n.Mail)
	if opts.CaseInsensitive {
		return strings.EqualFold(first, local)
	}
	return first == local
}

// Canonical picks the record that represents a group: the first member whose
// name matches its mail, else the first member.
func Canonical(group []domain.Notary, opts Options) domain.Notary {
	if len(group) == 1 {
		return group[0]
	}
	for _, n := range group {
		if NameMatchesMail(n, opts) {
			return n
		}
	}
	return group[0]
}

// Sort orders records by (address, canonical phone, mail), ascending.
func Sort(ns []domain.Notary) {
	slices.SortStableFunc(ns, func(a, b domain.Notary) int {
		ka, kb := KeyOf(a), KeyOf(b)
		return cmp.Or(
			strings.Compare(ka.Address, kb.Address),
			strings.Compare(ka.Phone, kb.Phone),
			strings.Compare(ka.Mail, kb.Mail),
		)
	})
}

// Dedupe keeps one canonical record per identity key and returns them sorted.
// The result does not depend on the order groups were first seen in.
func Dedupe(in []domain.Notary, opts Options) []domain.Notary {
	keys, groups := Group(in)
	out := make([]domain.Notary, 0, len(keys))
	for _, k := range keys {
		out = append(out, Canonical(groups[k], opts))
	}
	Sort(out)
	return out
}
