package dataset

import "testing"

func f64(v float64) *float64 { return &v }

func TestMergeLeftJoinIdentity(t *testing.T) {
	ind := []IndicatorRecord{
		{CountryCode: "AAA", TimePeriod: 2010, ObsValue: f64(10)},
		{CountryCode: "AAA", TimePeriod: 2011, ObsValue: f64(20)},
		{CountryCode: "BBB", TimePeriod: 2010, ObsValue: f64(30)},
	}
	meta := []MetadataRecord{
		{CountryCode: "AAA", TimePeriod: 2010, LifeExpectancy: f64(70), GDPPerCapita: f64(1000)},
		{CountryCode: "BBB", TimePeriod: 2010, LifeExpectancy: f64(60)},
		{CountryCode: "CCC", TimePeriod: 2010, LifeExpectancy: f64(80)},
	}
	got, st := Merge(ind, meta, MergeOptions{})
	if len(got) != len(ind) {
		t.Fatalf("merged rows = %d, want %d", len(got), len(ind))
	}
	if st.Matched != 2 || st.Unmatched != 1 || st.DuplicateKeys != 0 || st.Rows != 3 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	for i, r := range got {
		if r.CountryCode != ind[i].CountryCode || r.TimePeriod != ind[i].TimePeriod {
			t.Fatalf("row %d out of order: %+v", i, r)
		}
	}
	if !got[0].Matched || *got[0].LifeExpectancy != 70 || *got[0].GDPPerCapita != 1000 {
		t.Fatalf("row 0 not joined: %+v", got[0])
	}
	if got[1].Matched || got[1].LifeExpectancy != nil || got[1].GDPPerCapita != nil {
		t.Fatalf("row 1 should be null-filled: %+v", got[1])
	}
	if got[2].GDPPerCapita != nil || *got[2].LifeExpectancy != 60 {
		t.Fatalf("row 2 should keep null gdp: %+v", got[2])
	}
}

func TestMergeDuplicateKeys(t *testing.T) {
	ind := []IndicatorRecord{
		{CountryCode: "AAA", TimePeriod: 2010, ObsValue: f64(10)},
		{CountryCode: "BBB", TimePeriod: 2010, ObsValue: f64(30)},
	}
	meta := []MetadataRecord{
		{CountryCode: "AAA", TimePeriod: 2010, LifeExpectancy: f64(70)},
		{CountryCode: "AAA", TimePeriod: 2010, LifeExpectancy: f64(71)},
		{CountryCode: "AAA", TimePeriod: 2010, LifeExpectancy: f64(72)},
	}

	got, st := Merge(ind, meta, MergeOptions{})
	if len(got) != 4 || st.DuplicateKeys != 1 {
		t.Fatalf("expected row multiplication, got %d rows, stats %+v", len(got), st)
	}
	for i, want := range []float64{70, 71, 72} {
		if *got[i].LifeExpectancy != want {
			t.Fatalf("row %d life = %v, want %v", i, *got[i].LifeExpectancy, want)
		}
	}

	got, st = Merge(ind, meta, MergeOptions{DedupeMetadata: true})
	if len(got) != 2 || st.DuplicateKeys != 1 {
		t.Fatalf("dedupe should keep one row per key, got %d rows, stats %+v", len(got), st)
	}
	if *got[0].LifeExpectancy != 70 {
		t.Fatalf("dedupe should keep the first metadata row, got %v", *got[0].LifeExpectancy)
	}
}

func TestMergeEmpty(t *testing.T) {
	got, st := Merge(nil, nil, MergeOptions{})
	if len(got) != 0 || st.Rows != 0 {
		t.Fatalf("expected empty merge, got %d rows", len(got))
	}
}

func TestMergeKeepsRowsWithoutCountryCode(t *testing.T) {
	ind := []IndicatorRecord{
		{CountryCode: "AAA", TimePeriod: 2010, ObsValue: f64(10)},
		{CountryCode: "", TimePeriod: 2010, ObsValue: f64(20)},
	}
	meta := []MetadataRecord{
		{CountryCode: "AAA", TimePeriod: 2010, LifeExpectancy: f64(70)},
		{CountryCode: "", TimePeriod: 2010, LifeExpectancy: f64(99)},
	}
	got, st := Merge(ind, meta, MergeOptions{})
	if len(got) != len(ind) || st.Rows != 2 {
		t.Fatalf("merged rows = %d, want %d", len(got), len(ind))
	}
	if st.Matched != 1 || st.Unmatched != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	r := got[1]
	if r.CountryCode != "" || r.Matched || r.LifeExpectancy != nil || *r.ObsValue != 20 {
		t.Fatalf("row without a code should be null-filled, got %+v", r)
	}
}
