package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/stargather/common"
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

// Collision types are the body kinds themselves, plus one for the player's
// feet sensor.
const collisionTypePlayerGround cp.CollisionType = 6

const groundSensorCategory uint = 1 << 6

func collisionType(kind component.BodyKind) cp.CollisionType {
	return cp.CollisionType(kind)
}

func kindCategory(kind component.BodyKind) uint {
	return 1 << uint(kind)
}

type PhysicsSystem struct {
	space         *cp.Space
	rules         *CollisionRules
	gravityY      float64
	paused        bool
	handlersReady bool

	bodies   map[ecs.Entity]*bodyInfo
	bounds   *bodyInfo
	grounded map[ecs.Entity]bool
	pending  []contact
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	static      bool
}

// shapeRef is stored in cp.Shape.UserData.
type shapeRef struct {
	entity ecs.Entity
	kind   component.BodyKind
}

type contact struct {
	rule CollisionRule
	a, b ecs.Entity
}

func NewPhysicsSystem(rules *CollisionRules, gravityY float64) *PhysicsSystem {
	if rules == nil {
		rules = NewCollisionRules()
	}
	ps := &PhysicsSystem{
		rules:    rules,
		gravityY: gravityY,
		bodies:   make(map[ecs.Entity]*bodyInfo),
		grounded: make(map[ecs.Entity]bool),
	}
	ps.space = ps.newSpace()
	return ps
}

func (ps *PhysicsSystem) newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: ps.gravityY})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Rules() *CollisionRules {
	if ps == nil {
		return nil
	}
	return ps.rules
}

// Pause freezes the simulation. Bodies keep their state and no contacts are
// dispatched until Resume.
func (ps *PhysicsSystem) Pause() {
	if ps != nil {
		ps.paused = true
	}
}

func (ps *PhysicsSystem) Resume() {
	if ps != nil {
		ps.paused = false
	}
}

func (ps *PhysicsSystem) Paused() bool {
	return ps != nil && ps.paused
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.paused {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.pushVelocities(w)

	clear(ps.grounded)
	ps.pending = ps.pending[:0]
	ps.space.Step(1.0 / common.TPS)

	ps.syncTransforms(w)
	ps.flushPlayerContacts(w)
	ps.dispatch(w)
}

// Reset drops the body of e so it is rebuilt from its Transform and Velocity
// on the next update. Use it after teleporting an entity.
func (ps *PhysicsSystem) Reset(w *ecs.World, e ecs.Entity) {
	if ps == nil {
		return
	}
	ps.removeBody(w, e)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	for _, rule := range ps.rules.Rules() {
		respond := rule.Mode != ModeOverlap
		handler := ps.space.NewCollisionHandler(collisionType(rule.A), collisionType(rule.B))
		handler.UserData = ps
		handler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if sys, ok := userData.(*PhysicsSystem); ok && sys != nil {
				sys.queueContact(arb)
			}
			// Returning false ignores the pair until it separates.
			return respond
		}
	}

	for _, kind := range []component.BodyKind{component.BodyPlatform, component.BodyBounds} {
		groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionType(kind))
		groundHandler.UserData = ps
		groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			sensor, other := arb.Shapes()
			ref, ok := sensor.UserData.(shapeRef)
			if !ok {
				sensor, other = other, sensor
				if ref, ok = sensor.UserData.(shapeRef); !ok {
					return true
				}
			}
			// Only surfaces at or below the feet count.
			if math.Abs(arb.Normal().Y) <= 0.5 || other.BB().B < sensor.BB().B-1 {
				return true
			}
			sys.grounded[ref.entity] = true
			return true
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) queueContact(arb *cp.Arbiter) {
	shapeA, shapeB := arb.Shapes()
	refA, okA := shapeA.UserData.(shapeRef)
	refB, okB := shapeB.UserData.(shapeRef)
	if !okA || !okB {
		return
	}
	rule, swapped, ok := ps.rules.Lookup(refA.kind, refB.kind)
	if !ok || rule.Handler == nil {
		return
	}
	if swapped {
		refA, refB = refB, refA
	}
	ps.pending = append(ps.pending, contact{rule: rule, a: refA.entity, b: refB.entity})
}

// dispatch runs the handlers queued during the step. A handler may pause the
// simulation, which drops the rest of the batch.
func (ps *PhysicsSystem) dispatch(w *ecs.World) {
	pending := append([]contact(nil), ps.pending...)
	ps.pending = ps.pending[:0]
	for _, c := range pending {
		if ps.paused {
			return
		}
		if !ps.dispatchable(w, c.a) || !ps.dispatchable(w, c.b) {
			continue
		}
		c.rule.Handler(w, c.a, c.b)
	}
}

func (ps *PhysicsSystem) dispatchable(w *ecs.World, e ecs.Entity) bool {
	return w.IsAlive(e) && !ecs.Has(w, e, component.DisabledComponent.Kind())
}

// filterFor derives the shape filter of a kind from the rules table.
func (ps *PhysicsSystem) filterFor(kind component.BodyKind, collideWorldBounds bool) cp.ShapeFilter {
	mask := uint(0)
	for _, partner := range ps.rules.Partners(kind) {
		mask |= kindCategory(partner)
	}
	if collideWorldBounds {
		mask |= kindCategory(component.BodyBounds)
	}
	if kind == component.BodyPlatform {
		mask |= groundSensorCategory
	}
	return cp.NewShapeFilter(cp.NO_GROUP, kindCategory(kind), mask)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e := range ps.bodies {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.DisabledComponent.Kind()) {
			ps.removeBody(w, e)
		}
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if _, exists := ps.bodies[e]; exists {
			return
		}
		if ecs.Has(w, e, component.DisabledComponent.Kind()) {
			return
		}

		info := ps.createBodyInfo(e, transform, bodyComp)
		if info == nil {
			return
		}
		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok && !info.static {
			info.body.SetVelocity(vel.X, vel.Y)
		}
		ps.bodies[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	width, height, radius := bodyComp.Width, bodyComp.Height, bodyComp.Radius
	if radius <= 0 && (width <= 0 || height <= 0) {
		return nil
	}

	ref := shapeRef{entity: e, kind: bodyComp.Kind}
	filter := ps.filterFor(bodyComp.Kind, bodyComp.CollideWorldBounds)
	info := &bodyInfo{static: bodyComp.Static}

	var body *cp.Body
	var shape *cp.Shape
	if bodyComp.Static {
		body = ps.space.StaticBody
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(body, bb, 0)
		}
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Arcade-style bodies never rotate.
		body = cp.NewBody(mass, cp.INFINITY)
		body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})
		body.UserData = e
		if radius > 0 {
			shape = cp.NewCircle(body, radius, cp.Vector{})
		} else {
			shape = cp.NewBox(body, width, height, 0)
		}
		ps.space.AddBody(body)
	}

	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Bounce)
	shape.SetCollisionType(collisionType(bodyComp.Kind))
	shape.SetFilter(filter)
	shape.UserData = ref
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if bodyComp.Kind == component.BodyPlayer && !bodyComp.Static && radius <= 0 {
		ground := ps.createGroundSensor(bodyComp, body)
		ground.UserData = ref
		ps.space.AddShape(ground)
		info.groundShape = ground
		info.shapes = append(info.shapes, ground)
	}

	return info
}

// createGroundSensor adds a thin strip under the feet of a box body.
func (ps *PhysicsSystem) createGroundSensor(bodyComp *component.PhysicsBody, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -bodyComp.Width * 0.45,
		B: bodyComp.Height / 2.0,
		R: bodyComp.Width * 0.45,
		T: bodyComp.Height/2.0 + 2,
	}
	mask := kindCategory(component.BodyPlatform) | kindCategory(component.BodyBounds)

	shape := cp.NewBox2(body, groundBB, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypePlayerGround)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, groundSensorCategory, mask))
	return shape
}

func (ps *PhysicsSystem) removeBody(w *ecs.World, e ecs.Entity) {
	info, ok := ps.bodies[e]
	if !ok {
		return
	}
	for _, shape := range info.shapes {
		if ps.space.ContainsShape(shape) {
			ps.space.RemoveShape(shape)
		}
	}
	if !info.static && info.body != nil && ps.space.ContainsBody(info.body) {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
	delete(ps.grounded, e)

	if bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		bodyComp.Body = nil
		bodyComp.Shape = nil
	}
}

// syncWorldBounds builds the arena walls once. Only bodies that opt in with
// CollideWorldBounds include them in their mask.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	if ps.bounds != nil {
		return
	}
	boundsEntity, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}

	worldW, worldH := bounds.Width, bounds.Height
	segments := [][2]cp.Vector{
		{{X: 0, Y: 0}, {X: worldW, Y: 0}},
		{{X: 0, Y: worldH}, {X: worldW, Y: worldH}},
		{{X: 0, Y: 0}, {X: 0, Y: worldH}},
		{{X: worldW, Y: 0}, {X: worldW, Y: worldH}},
	}

	filter := cp.NewShapeFilter(cp.NO_GROUP, kindCategory(component.BodyBounds), cp.ALL_CATEGORIES)
	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], 1)
		shape.SetFriction(0)
		shape.SetElasticity(1)
		shape.SetCollisionType(collisionType(component.BodyBounds))
		shape.SetFilter(filter)
		shape.UserData = shapeRef{entity: boundsEntity, kind: component.BodyBounds}
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
	}
	ps.bounds = info
}

func (ps *PhysicsSystem) pushVelocities(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}
		info.body.SetVelocity(vel.X, vel.Y)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y

		if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
			v := info.body.Velocity()
			vel.X = v.X
			vel.Y = v.Y
		}
	}
}

func (ps *PhysicsSystem) flushPlayerContacts(w *ecs.World) {
	ecs.ForEach(w, component.PlayerCollisionComponent.Kind(), func(e ecs.Entity, pc *component.PlayerCollision) {
		pc.Grounded = ps.grounded[e]
	})
}
