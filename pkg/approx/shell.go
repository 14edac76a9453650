package approx

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/burl/pkg/brep"
)

// Shell tessellates every face of a shell sequentially, sharing one cache
// across the whole traversal.
func Shell(s brep.Shell, tolerance Tolerance) (ShellApprox, error) {
	if tolerance <= 0 {
		_, err := NewTolerance(float64(tolerance))
		return ShellApprox{}, err
	}

	cache := NewCache()
	faces := make([]FaceApprox, len(s.Faces))
	for i, f := range s.Faces {
		faces[i] = Face(f, tolerance, cache)
	}

	return ShellApprox{Faces: dedupFaceApprox(faces)}, nil
}

// ShellParallel tessellates a shell's faces concurrently. The shared cache's
// compute-once guard keeps boundary tessellations identical to the
// sequential traversal, so the result is the same either way.
func ShellParallel(s brep.Shell, tolerance Tolerance) (ShellApprox, error) {
	if tolerance <= 0 {
		_, err := NewTolerance(float64(tolerance))
		return ShellApprox{}, err
	}

	cache := NewCache()
	faces := make([]FaceApprox, len(s.Faces))

	var wg sync.WaitGroup
	for i, f := range s.Faces {
		wg.Add(1)
		go func(i int, f brep.Face) {
			defer wg.Done()
			faces[i] = Face(f, tolerance, cache)
		}(i, f)
	}
	wg.Wait()

	return ShellApprox{Faces: dedupFaceApprox(faces)}, nil
}

// dedupFaceApprox sorts face tessellations by content and drops duplicates.
// The order is total and stable across repeated calls; it has no meaning
// beyond dedup and deterministic iteration.
func dedupFaceApprox(faces []FaceApprox) []FaceApprox {
	if len(faces) == 0 {
		return nil
	}

	keys := make([]string, len(faces))
	order := make([]int, len(faces))
	for i, f := range faces {
		keys[i] = faceApproxKey(f)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

	out := make([]FaceApprox, 0, len(faces))
	for n, i := range order {
		if n > 0 && keys[i] == keys[order[n-1]] {
			continue
		}
		out = append(out, faces[i])
	}
	return out
}

func faceApproxKey(f FaceApprox) string {
	var b strings.Builder
	for _, p := range f.Exterior.Points {
		writePoint(&b, p)
	}
	return b.String()
}

func writePoint(b *strings.Builder, p v3.Vec) {
	b.WriteString(strconv.FormatFloat(p.X, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Y, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(p.Z, 'g', -1, 64))
	b.WriteByte(';')
}
