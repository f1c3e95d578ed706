package tui

import (
	"math"

	"github.com/avelar/chemlab/internal/lab"
)

// Canvas geometry in dot coordinates (canvasCols*2 x canvasRows*4).
const (
	canvasCols = 40
	canvasRows = 22

	flaskCX    = 40
	neckTop    = 6
	neckBottom = 30
	neckHalf   = 6
	baseY      = 80
	baseHalf   = 28
)

// drawApparatus renders the flask, its contents, and the bench fixtures for
// the current lab state.
func drawApparatus(c *Canvas, st *lab.State, chemCount int) {
	c.Clear()

	// Erlenmeyer outline: rim, neck, cone, base.
	c.HLine(flaskCX-neckHalf-2, flaskCX+neckHalf+2, neckTop)
	c.VLine(flaskCX-neckHalf, neckTop, neckBottom)
	c.VLine(flaskCX+neckHalf, neckTop, neckBottom)
	c.Line(flaskCX-neckHalf, neckBottom, flaskCX-baseHalf, baseY)
	c.Line(flaskCX+neckHalf, neckBottom, flaskCX+baseHalf, baseY)
	c.HLine(flaskCX-baseHalf, flaskCX+baseHalf, baseY)

	if chemCount > 0 {
		drawLiquid(c, st, chemCount)
	}
	if st.Stirring != 0 {
		drawStirBar(c, st)
	}
	if st.Crystal > 0 {
		drawCrystals(c, st)
	}
	if st.IceBath {
		drawIce(c)
	}
	drawThermometer(c, st)
}

// coneHalf is the flask's half width at dot row y inside the cone.
func coneHalf(y int) int {
	if y <= neckBottom {
		return neckHalf
	}
	return neckHalf + (y-neckBottom)*(baseHalf-neckHalf)/(baseY-neckBottom)
}

func liquidSurface(chemCount int) int {
	fill := 0.2 + 0.1*float64(chemCount)
	if fill > 0.75 {
		fill = 0.75
	}
	return baseY - int(fill*float64(baseY-neckBottom))
}

func drawLiquid(c *Canvas, st *lab.State, chemCount int) {
	surface := liquidSurface(chemCount)
	half := coneHalf(surface)
	c.HLine(flaskCX-half+1, flaskCX+half-1, surface)

	// Light hatch fill below the surface.
	for y := surface + 2; y < baseY; y += 2 {
		h := coneHalf(y) - 2
		c.HLine(flaskCX-h, flaskCX+h, y)
	}

	// Bubbles rise while the mix is hot.
	if st.Temperature > 60 {
		frame := int(st.Elapsed * 8)
		for i := 0; i < 6; i++ {
			h := (frame*31 + i*173) % 1024
			span := coneHalf(baseY-4) - 4
			if span < 1 {
				span = 1
			}
			x := flaskCX - span + h%(2*span)
			depth := baseY - 3 - surface
			if depth < 1 {
				depth = 1
			}
			y := surface + 1 + (h/7)%depth
			c.Dot(x, y)
		}
	}
}

func drawStirBar(c *Canvas, st *lab.State) {
	speed := float64(st.Stirring) * 2.5
	w := 4 + int(3*math.Abs(math.Sin(st.Elapsed*speed)))
	c.HLine(flaskCX-w, flaskCX+w, baseY-3)
	c.HLine(flaskCX-w, flaskCX+w, baseY-4)
}

func drawCrystals(c *Canvas, st *lab.State) {
	count := int(st.Crystal / 100 * 20)
	for i := 0; i < count; i++ {
		h := i*2654435761 + 97
		span := coneHalf(baseY-2) - 4
		if span < 1 {
			span = 1
		}
		x := flaskCX - span + (h>>4)%(2*span)
		y := baseY - 2 - (h>>9)%5
		c.Dot(x, y)
	}
}

func drawIce(c *Canvas) {
	for x := flaskCX - baseHalf - 6; x <= flaskCX+baseHalf+6; x += 3 {
		c.Dot(x, baseY+3)
		c.Dot(x+1, baseY+5)
	}
	c.HLine(flaskCX-baseHalf-8, flaskCX+baseHalf+8, baseY+7)
}

func drawThermometer(c *Canvas, st *lab.State) {
	tx := canvasCols*2 - 6
	top, bottom := 10, 68
	c.VLine(tx-1, top, bottom)
	c.VLine(tx+1, top, bottom)
	c.HLine(tx-1, tx+1, top)
	c.Blob(tx, bottom+3, 2)

	frac := (st.Temperature - lab.MinTargetTemp) / (lab.MaxTargetTemp - lab.MinTargetTemp)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	level := bottom - int(frac*float64(bottom-top))
	c.FillRect(tx-1, level, tx+1, bottom)
}
