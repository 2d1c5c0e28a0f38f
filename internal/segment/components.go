package segment

// Components labels the true pixels of a row-major mask into 4-connected
// components. The returned grid holds 0 for background and 1..n for component
// ids; n is the component count.
func Components(mask []bool, w, h int) ([]int32, int) {
	comps := make([]int32, w*h)
	next := int32(0)

	queue := make([]int, 0, 1024)
	for start := range mask {
		if !mask[start] || comps[start] != 0 {
			continue
		}

		next++
		comps[start] = next
		queue = append(queue[:0], start)

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w

			if x > 0 && mask[idx-1] && comps[idx-1] == 0 {
				comps[idx-1] = next
				queue = append(queue, idx-1)
			}
			if x < w-1 && mask[idx+1] && comps[idx+1] == 0 {
				comps[idx+1] = next
				queue = append(queue, idx+1)
			}
			if y > 0 && mask[idx-w] && comps[idx-w] == 0 {
				comps[idx-w] = next
				queue = append(queue, idx-w)
			}
			if y < h-1 && mask[idx+w] && comps[idx+w] == 0 {
				comps[idx+w] = next
				queue = append(queue, idx+w)
			}
		}
	}

	return comps, int(next)
}
