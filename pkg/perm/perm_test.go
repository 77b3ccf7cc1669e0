package perm

import (
	"slices"
	"testing"
)

func TestSeq(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{"Zero", 0, []int{}},
		{"Negative", -3, []int{}},
		{"One", 1, []int{0}},
		{"Five", 5, []int{0, 1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Seq(tt.n); !slices.Equal(got, tt.want) {
				t.Errorf("Seq(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1}, {1, 1}, {2, 2}, {4, 24}, {6, 720}, {10, 3628800},
	}

	for _, tt := range tests {
		if got := Factorial(tt.n); got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		name string
		p    []int
		want bool
	}{
		{"Empty", []int{}, true},
		{"Identity", []int{0, 1, 2}, true},
		{"Reversed", []int{2, 1, 0}, true},
		{"Repeated", []int{0, 0, 2}, false},
		{"OutOfRange", []int{0, 1, 3}, false},
		{"Negative", []int{0, -1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPermutation(tt.p); got != tt.want {
				t.Errorf("IsPermutation(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestInverse(t *testing.T) {
	p := []int{2, 0, 3, 1}
	inv := Inverse(p)

	if want := []int{1, 3, 0, 2}; !slices.Equal(inv, want) {
		t.Fatalf("Inverse(%v) = %v, want %v", p, inv, want)
	}

	// Composing a permutation with its inverse yields the identity.
	if got := Apply(p, inv); !slices.Equal(got, Seq(len(p))) {
		t.Errorf("Apply(p, Inverse(p)) = %v, want identity", got)
	}
}

func TestApply(t *testing.T) {
	p := []int{1, 2, 0}
	q := []int{2, 0, 1}

	if got := Apply(p, q); !slices.Equal(got, Seq(3)) {
		t.Errorf("Apply(%v, %v) = %v, want identity", p, q, got)
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		limit int
		want  int
	}{
		{"ZeroElements", 0, -1, 1},
		{"OneElement", 1, -1, 1},
		{"AllOfThree", 3, -1, 6},
		{"AllOfFour", 4, -1, 24},
		{"Limited", 6, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.n, tt.limit)
			if len(got) != tt.want {
				t.Fatalf("Generate(%d, %d) returned %d permutations, want %d", tt.n, tt.limit, len(got), tt.want)
			}
			for _, p := range got {
				if !IsPermutation(p) {
					t.Errorf("Generate produced non-permutation %v", p)
				}
			}
		})
	}
}

func TestGenerateUnique(t *testing.T) {
	perms := Generate(4, -1)
	seen := make(map[string]bool, len(perms))
	for _, p := range perms {
		key := ""
		for _, v := range p {
			key += string(rune('0' + v))
		}
		if seen[key] {
			t.Fatalf("duplicate permutation %v", p)
		}
		seen[key] = true
	}
}
