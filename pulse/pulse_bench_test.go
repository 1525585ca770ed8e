package pulse

import (
	"testing"

	"github.com/cwbudde/algo-shpb/internal/testutil"
)

func BenchmarkFindWindow(b *testing.B) {
	cases := []struct {
		name   string
		points int
	}{
		{"direct/32", 32},
		{"fft/1000", 1000},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			record := testutil.EmbedAt(16384, 5000, testutil.HalfSine(1.0, tc.points))
			testutil.AddTo(record, testutil.DeterministicNoise(1, 0.01, len(record)))

			d, err := NewDetector(Config{PulsePoints: tc.points})
			if err != nil {
				b.Fatal(err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := d.FindWindow(record, 0, len(record)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSegmentAndCenter(b *testing.B) {
	record := testutil.EmbedAt(16384, 5000, testutil.HalfSine(1.0, 1000))

	d, err := NewDetector(Config{PulsePoints: 1000})
	if err != nil {
		b.Fatal(err)
	}

	w := Window{Start: 5000, End: 6000}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := d.SegmentAndCenter(record, w, 4096, 0.05); err != nil {
			b.Fatal(err)
		}
	}
}
