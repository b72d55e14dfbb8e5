// Reelfeed - Movie Diary Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelfeed

package aggregator

// ShuffleOrder returns a permutation of [0, n). The permutation is drawn on
// first use and reused until Reset or until n changes.
func (s *Service) ShuffleOrder(n int) []int {
	if n <= 0 {
		return []int{}
	}
	s.shuffleMu.Lock()
	defer s.shuffleMu.Unlock()

	if len(s.shuffle) != n {
		s.shuffle = s.permutation(n)
	}
	out := make([]int, n)
	copy(out, s.shuffle)
	return out
}

// permutation is a Fisher-Yates shuffle of [0, n) driven by s.intN.
func (s *Service) permutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := s.intN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
