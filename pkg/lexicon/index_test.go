package lexicon

import (
	"reflect"
	"testing"
)

func runVerb() Entry {
	return Entry{
		Word:  "run",
		Lemma: "run",
		POS:   "V",
		Variants: []Variant{{
			Forms: map[string][]string{
				"INF":  {"run"},
				"3PSP": {"runs"},
				"PT":   {"ran"},
				"PAP":  {"run"},
				"PRP":  {"running"},
			},
			Definitions: []Definition{{Text: "To move swiftly on foot."}},
		}},
	}
}

func stopNoun() Entry {
	return Entry{
		Word:  "stop",
		Lemma: "stop",
		POS:   "N",
		Variants: []Variant{{
			Forms: map[string][]string{"PLURAL": {"stops"}},
		}},
	}
}

func stopVerb() Entry {
	return Entry{
		Word:  "stop",
		Lemma: "stop",
		POS:   "V",
		Variants: []Variant{{
			Forms: map[string][]string{
				"INF": {"stop"},
				"PT":  {"stopped"},
				"PRP": {"stopping"},
			},
		}},
	}
}

func TestIndexLookupByWord(t *testing.T) {
	ix := NewIndex()
	ix.Add(runVerb())

	got := ix.Lookup("run")
	if len(got) != 1 || got[0].POS != "V" {
		t.Fatalf("Lookup(run) = %+v, want the verb entry", got)
	}
}

func TestIndexLookupByInflectedForm(t *testing.T) {
	ix := NewIndex()
	ix.Add(runVerb())

	for _, form := range []string{"ran", "running", "runs"} {
		if got := ix.Lookup(form); len(got) != 1 || got[0].Lemma != "run" {
			t.Errorf("Lookup(%q) = %+v, want run entry", form, got)
		}
	}
}

func TestIndexLookupCaseFolds(t *testing.T) {
	ix := NewIndex()
	ix.Add(runVerb())

	for _, form := range []string{"Ran", "RAN", " ran "} {
		if got := ix.Lookup(form); len(got) != 1 {
			t.Errorf("Lookup(%q) = %+v, want 1 entry", form, got)
		}
	}
}

func TestIndexLookupMiss(t *testing.T) {
	ix := NewIndex()
	ix.Add(runVerb())

	if got := ix.Lookup("walked"); got != nil {
		t.Errorf("Lookup(walked) = %+v, want nil", got)
	}
	if got := ix.Lookup(""); got != nil {
		t.Errorf("Lookup of empty form = %+v, want nil", got)
	}
}

func TestIndexLookupPreservesAddOrder(t *testing.T) {
	ix := NewIndex()
	ix.Add(stopNoun())
	ix.Add(stopVerb())

	got := ix.Lookup("stop")
	if len(got) != 2 {
		t.Fatalf("Lookup(stop) = %d entries, want 2", len(got))
	}
	if got[0].POS != "N" || got[1].POS != "V" {
		t.Errorf("order = %s, %s; want N, V", got[0].POS, got[1].POS)
	}
}

func TestIndexNoDuplicatePerForm(t *testing.T) {
	// "run" appears as word, lemma, INF, and PAP of the same entry; one
	// lookup must still return the entry once.
	ix := NewIndex()
	ix.Add(runVerb())

	if got := ix.Lookup("run"); len(got) != 1 {
		t.Errorf("Lookup(run) = %d entries, want 1", len(got))
	}
}

func TestIndexLemmas(t *testing.T) {
	ix := NewIndex()
	ix.Add(stopNoun())
	ix.Add(stopVerb())
	ix.Add(runVerb())

	if got := ix.Lemmas("stop"); !reflect.DeepEqual(got, []string{"stop"}) {
		t.Errorf("Lemmas(stop) = %v, want [stop]", got)
	}
	if got := ix.Lemmas("ran"); !reflect.DeepEqual(got, []string{"run"}) {
		t.Errorf("Lemmas(ran) = %v, want [run]", got)
	}
	if got := ix.Lemmas("walked"); got != nil {
		t.Errorf("Lemmas(walked) = %v, want nil", got)
	}
}

func TestIndexLen(t *testing.T) {
	ix := NewIndex()
	if ix.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ix.Len())
	}
	ix.Add(runVerb())
	ix.Add(stopNoun())
	if ix.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ix.Len())
	}
}
