package asset

// DefaultSceneFSM is the scene graph: Landing -> Transitioning -> Active
// Active has no outgoing transition, the sequence is one-way per session
// TransitionElapsed without ms waits parameter.TransitionDuration
const DefaultSceneFSM = `
initial = "Landing"

[states.Landing]
on_enter = [
    { action = "SetStarSpeed", args = { multiplier = 1.0 } },
    { action = "SetStretch", args = { enabled = false } },
    { action = "AcceptInput", args = { enabled = false } },
]
transitions = [
    { trigger = "Activate", target = "Transitioning" },
]

[states.Transitioning]
on_enter = [
    { action = "SetStarSpeed", args = { multiplier = 50.0 } },
    { action = "SetStretch", args = { enabled = true } },
]
on_exit = [
    { action = "SetStretch", args = { enabled = false } },
]
transitions = [
    { trigger = "Tick", target = "Active", guard = "TransitionElapsed" },
]

[states.Active]
on_enter = [
    { action = "SetStarSpeed", args = { multiplier = 2.0 } },
    { action = "StartThoughts" },
    { action = "AcceptInput", args = { enabled = true } },
]
`
