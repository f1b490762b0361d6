package matching

import (
	"math/rand"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		reqs   []string
		skills []string
		want   int
	}{
		{name: "case insensitive overlap", reqs: []string{"Python", "Go"}, skills: []string{"python", "sql"}, want: 1},
		{name: "empty requirements", reqs: nil, skills: []string{"go"}, want: 0},
		{name: "empty skills", reqs: []string{"Go"}, skills: nil, want: 0},
		{name: "duplicate requirements count each time", reqs: []string{"Go", "go", "GO"}, skills: []string{"Go"}, want: 3},
		{name: "duplicate skills counted once", reqs: []string{"SQL"}, skills: []string{"sql", "SQL", "Sql"}, want: 1},
		{name: "no overlap", reqs: []string{"Rust"}, skills: []string{"Java"}, want: 0},
		{name: "surrounding whitespace", reqs: []string{" Docker "}, skills: []string{"docker"}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.reqs, tt.skills); got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_BoundedByRequirements(t *testing.T) {
	vocab := []string{"go", "Go", "python", "SQL", "docker", "k8s", "AWS", "aws"}
	rng := rand.New(rand.NewSource(7))
	pick := func() []string {
		n := rng.Intn(6)
		out := make([]string, n)
		for i := range out {
			out[i] = vocab[rng.Intn(len(vocab))]
		}
		return out
	}
	for i := 0; i < 500; i++ {
		reqs, skills := pick(), pick()
		got := Score(reqs, skills)
		if got < 0 || got > len(reqs) {
			t.Fatalf("Score(%v, %v) = %d out of [0, %d]", reqs, skills, got, len(reqs))
		}
	}
}

func TestRank_OrdersAndLimits(t *testing.T) {
	type job struct {
		name string
		reqs []string
	}
	jobs := []job{
		{name: "a", reqs: []string{"Go"}},
		{name: "b", reqs: []string{"Go", "SQL", "Docker"}},
		{name: "c", reqs: []string{"Java"}},
		{name: "d", reqs: []string{"sql", "go"}},
	}
	ranked := Rank(jobs, func(j job) []string { return j.reqs }, []string{"go", "sql", "docker"}, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	want := []string{"b", "d", "a"}
	for i, w := range want {
		if ranked[i].Item.name != w {
			t.Fatalf("position %d: expected %s, got %s", i, w, ranked[i].Item.name)
		}
	}
	if ranked[0].Score != 3 || ranked[1].Score != 2 {
		t.Fatalf("unexpected scores: %+v", ranked)
	}
}

func TestNormalizeSkills(t *testing.T) {
	got := NormalizeSkills([]string{" Go", "go", "", "SQL "})
	if len(got) != 2 || got[0] != "go" || got[1] != "sql" {
		t.Fatalf("unexpected normalized skills: %v", got)
	}
}
