package units

// Graph — двунаправленный граф конверсий одного товара в памяти.
// Для пары юнитов ставка ищется по пути через промежуточные юниты,
// перемножая ребра. Граф маленький (десятки юнитов), BFS достаточно.
type Graph struct {
	adj map[int64][]halfEdge
}

type halfEdge struct {
	to   int64
	rate float64
}

func BuildGraph(edges []Edge) *Graph {
	g := &Graph{adj: make(map[int64][]halfEdge, len(edges))}
	for _, e := range edges {
		g.adj[e.FromUnitID] = append(g.adj[e.FromUnitID], halfEdge{to: e.ToUnitID, rate: e.Rate})
		// Обратное направление выводим из прямого, даже если зеркальное
		// ребро в БД не записано (историческая асимметрия).
		if e.Rate > 0 && !g.hasDirect(e.ToUnitID, e.FromUnitID) {
			g.adj[e.ToUnitID] = append(g.adj[e.ToUnitID], halfEdge{to: e.FromUnitID, rate: 1 / e.Rate})
		}
	}
	return g
}

func (g *Graph) hasDirect(from, to int64) bool {
	for _, h := range g.adj[from] {
		if h.to == to {
			return true
		}
	}
	return false
}

// Rate возвращает эффективную ставку from->to, ok=false если юниты не связаны.
func (g *Graph) Rate(from, to int64) (float64, bool) {
	if from == to {
		return 1, true
	}
	type state struct {
		id   int64
		rate float64
	}
	visited := map[int64]bool{from: true}
	queue := []state{{id: from, rate: 1}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, h := range g.adj[cur.id] {
			if visited[h.to] {
				continue
			}
			r := cur.rate * h.rate
			if h.to == to {
				return r, true
			}
			visited[h.to] = true
			queue = append(queue, state{id: h.to, rate: r})
		}
	}
	return 0, false
}

// Connected — все ли юниты достижимы друг из друга.
func (g *Graph) Connected(unitIDs []int64) bool {
	if len(unitIDs) <= 1 {
		return true
	}
	for _, id := range unitIDs[1:] {
		if _, ok := g.Rate(unitIDs[0], id); !ok {
			return false
		}
	}
	return true
}
