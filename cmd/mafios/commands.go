package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jwebster45206/mafios/internal/catalog"
	"github.com/jwebster45206/mafios/pkg/actions"
	"github.com/jwebster45206/mafios/pkg/state"
	"github.com/jwebster45206/mafios/pkg/textfilter"
)

const (
	recruitCost    = 5000
	recruitLoyalty = 50
	recruitPower   = 5
)

// commander turns console input into Actions calls and a line of feedback.
type commander struct {
	actions *actions.Actions
	catalog *catalog.Catalog
	text    *textfilter.Formatter
	newGame func()
	export  func() error
}

type command struct {
	usage string
	args  int
	run   func(c *commander, args []string) string
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":      {usage: "help", run: (*commander).help},
		"crimes":    {usage: "crimes", run: (*commander).listCrimes},
		"crime":     {usage: "crime <crime>", args: 1, run: (*commander).crime},
		"bribe":     {usage: "bribe <amount>", args: 1, run: (*commander).bribe},
		"recruit":   {usage: "recruit <name...>", args: 1, run: (*commander).recruit},
		"fire":      {usage: "fire <member>", args: 1, run: (*commander).fire},
		"train":     {usage: "train <member> <combat|stealth|charisma>", args: 2, run: (*commander).train},
		"claim":     {usage: "claim <territory>", args: 1, run: (*commander).claim},
		"attack":    {usage: "attack <territory>", args: 1, run: (*commander).attack},
		"fortify":   {usage: "fortify <territory>", args: 1, run: (*commander).fortify},
		"abandon":   {usage: "abandon <territory>", args: 1, run: (*commander).abandon},
		"buy":       {usage: "buy <business>", args: 1, run: (*commander).buy},
		"upgrade":   {usage: "upgrade <business|operation>", args: 1, run: (*commander).upgrade},
		"sell":      {usage: "sell <business>", args: 1, run: (*commander).sell},
		"manage":    {usage: "manage <business> <member>", args: 2, run: (*commander).manage},
		"unmanage":  {usage: "unmanage <business>", args: 1, run: (*commander).unmanage},
		"launder":   {usage: "launder <business> <amount>", args: 2, run: (*commander).launder},
		"start":     {usage: "start <operation>", args: 1, run: (*commander).start},
		"stop":      {usage: "stop <operation>", args: 1, run: (*commander).stop},
		"assign":    {usage: "assign <operation> <member>", args: 2, run: (*commander).assign},
		"unassign":  {usage: "unassign <operation> <member>", args: 2, run: (*commander).unassign},
		"hit":       {usage: "hit <gang>", args: 1, run: (*commander).hitGang},
		"negotiate": {usage: "negotiate <gang> <truce|alliance|payment>", args: 2, run: (*commander).negotiate},
		"respond":   {usage: "respond <gang event> <accept|decline|fight>", args: 2, run: (*commander).respond},
		"choose":    {usage: "choose <event> <choice>", args: 2, run: (*commander).choose},
		"dismiss":   {usage: "dismiss <event>", args: 1, run: (*commander).dismiss},
		"newgame":   {usage: "newgame", run: (*commander).reset},
		"export":    {usage: "export", run: (*commander).copySave},
	}
}

// Run executes one line of input.
func (c *commander) Run(line string) string {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(fields) == 0 {
		return ""
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command %q. Type help for a list.", name)
	}
	if len(args) < cmd.args {
		return "Usage: " + cmd.usage
	}
	return cmd.run(c, args)
}

func (c *commander) help(_ []string) string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, name := range names {
		b.WriteString("• " + commands[name].usage + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *commander) listCrimes(_ []string) string {
	gs := c.actions.State()
	var b strings.Builder
	for _, cr := range c.catalog.Crimes {
		status := "ready"
		switch {
		case gs.Player.Level < cr.RequiredLevel:
			status = fmt.Sprintf("needs level %d", cr.RequiredLevel)
		case !gs.CrimeReady(cr.ID, time.Now()):
			status = "cooling down"
		}
		fmt.Fprintf(&b, "• %s (%s): %d%%, %s-%s [%s]\n", cr.ID, cr.Name, cr.SuccessChance,
			c.text.Kronor(cr.MinReward), c.text.Kronor(cr.MaxReward), status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *commander) crime(args []string) string {
	cr, ok := c.catalog.Crime(args[0])
	if !ok {
		return fmt.Sprintf("No crime called %q.", args[0])
	}
	res, ok := c.actions.CommitCrime(cr)
	if !ok {
		return cr.Name + " is not possible right now."
	}
	if !res.Success {
		return fmt.Sprintf("%s went wrong. Respekt %d, heat %+d.", cr.Name, res.Respekt, res.Heat)
	}
	return fmt.Sprintf("%s paid %s. Respekt %+d, heat %+d.", cr.Name, c.text.Kronor(res.Reward), res.Respekt, res.Heat)
}

func (c *commander) bribe(args []string) string {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err.Error()
	}
	if !c.actions.BribePolice(amount) {
		return "The police will not take that."
	}
	return fmt.Sprintf("Paid %s. Polisbevakning is now %d.", c.text.Kronor(amount), c.actions.State().Player.Heat)
}

func (c *commander) recruit(args []string) string {
	name := strings.Join(args, " ")
	ok := c.actions.RecruitMember(state.Member{
		Name:    name,
		Role:    state.RoleProspect,
		Loyalty: recruitLoyalty,
		Power:   recruitPower,
	}, recruitCost)
	if !ok {
		return fmt.Sprintf("Could not recruit %s (costs %s).", name, c.text.Kronor(recruitCost))
	}
	return fmt.Sprintf("%s joins as a prospect.", name)
}

func (c *commander) fire(args []string) string {
	id, ok := c.memberID(args[0])
	if !ok || !c.actions.DismissMember(id) {
		return fmt.Sprintf("No member %q to dismiss.", args[0])
	}
	return "Member dismissed."
}

func (c *commander) train(args []string) string {
	id, ok := c.memberID(args[0])
	if !ok {
		return fmt.Sprintf("No member %q.", args[0])
	}
	skill := state.Skill(strings.ToLower(args[1]))
	if !skill.Valid() {
		return "Usage: " + commands["train"].usage
	}
	gs := c.actions.State()
	cost := actions.TrainingCost(gs.Chapter.Members[gs.Chapter.Member(id)], skill)
	if !c.actions.TrainMember(id, skill) {
		return fmt.Sprintf("Training failed (costs %s).", c.text.Kronor(cost))
	}
	return fmt.Sprintf("Trained %s for %s.", skill, c.text.Kronor(cost))
}

func (c *commander) claim(args []string) string {
	if !c.actions.ClaimTerritory(args[0]) {
		return fmt.Sprintf("Cannot claim %q.", args[0])
	}
	return "Territory claimed."
}

func (c *commander) attack(args []string) string {
	gs := c.actions.State()
	i := gs.Territory(args[0])
	if i < 0 {
		return fmt.Sprintf("No territory %q.", args[0])
	}
	switch gs.Territories[i].Status {
	case state.TerritoryEnemy, state.TerritoryContested:
	case state.TerritoryControlled, state.TerritoryNeutral:
		return gs.Territories[i].Name + " is not held by anyone you can fight."
	}
	if c.actions.AttackTerritory(args[0]) {
		return gs.Territories[i].Name + " is yours."
	}
	return "The attack on " + gs.Territories[i].Name + " failed."
}

func (c *commander) fortify(args []string) string {
	if !c.actions.FortifyTerritory(args[0]) {
		return fmt.Sprintf("Cannot fortify %q.", args[0])
	}
	return "Defenses improved."
}

func (c *commander) abandon(args []string) string {
	if !c.actions.AbandonTerritory(args[0]) {
		return fmt.Sprintf("Cannot abandon %q.", args[0])
	}
	return "Territory abandoned."
}

func (c *commander) buy(args []string) string {
	if !c.actions.PurchaseBusiness(args[0]) {
		return fmt.Sprintf("Cannot buy %q.", args[0])
	}
	return "Business bought."
}

func (c *commander) upgrade(args []string) string {
	gs := c.actions.State()
	switch {
	case gs.Business(args[0]) >= 0:
		if c.actions.UpgradeBusiness(args[0]) {
			return "Business upgraded."
		}
	case gs.Operation(args[0]) >= 0:
		if c.actions.UpgradeOperation(args[0]) {
			return "Operation upgraded."
		}
	default:
		return fmt.Sprintf("Nothing called %q.", args[0])
	}
	return fmt.Sprintf("Cannot upgrade %q.", args[0])
}

func (c *commander) sell(args []string) string {
	if !c.actions.SellBusiness(args[0]) {
		return fmt.Sprintf("Cannot sell %q.", args[0])
	}
	return "Business sold."
}

func (c *commander) manage(args []string) string {
	id, ok := c.memberID(args[1])
	if !ok || !c.actions.AssignManager(args[0], id) {
		return "Cannot assign that manager."
	}
	return "Manager assigned."
}

func (c *commander) unmanage(args []string) string {
	if !c.actions.RemoveManager(args[0]) {
		return "No manager to remove."
	}
	return "Manager removed."
}

func (c *commander) launder(args []string) string {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err.Error()
	}
	gs := c.actions.State()
	i := gs.Business(args[0])
	if i < 0 {
		return fmt.Sprintf("No business %q.", args[0])
	}
	fee := actions.LaunderingFee(gs.Businesses[i], amount)
	if !c.actions.LaunderMoney(args[0], amount) {
		return "Cannot launder that amount there."
	}
	return fmt.Sprintf("Laundered %s for a fee of %s.", c.text.Kronor(amount), c.text.Kronor(fee))
}

func (c *commander) start(args []string) string {
	if !c.actions.StartOperation(args[0]) {
		return fmt.Sprintf("Cannot start %q.", args[0])
	}
	return "Operation started."
}

func (c *commander) stop(args []string) string {
	if !c.actions.StopOperation(args[0]) {
		return fmt.Sprintf("Cannot stop %q.", args[0])
	}
	return "Operation stopped."
}

func (c *commander) assign(args []string) string {
	id, ok := c.memberID(args[1])
	if !ok || !c.actions.AssignMember(args[0], id) {
		return "Cannot assign that member."
	}
	return "Member assigned."
}

func (c *commander) unassign(args []string) string {
	id, ok := c.memberID(args[1])
	if !ok || !c.actions.UnassignMember(args[0], id) {
		return "That member is not on the operation."
	}
	return "Member unassigned."
}

func (c *commander) hitGang(args []string) string {
	gs := c.actions.State()
	i := gs.Gang(args[0])
	if i < 0 {
		return fmt.Sprintf("No gang %q.", args[0])
	}
	if c.actions.AttackGang(args[0]) {
		return "You hit " + gs.RivalGangs[i].Name + " hard."
	}
	return gs.RivalGangs[i].Name + " drove you off."
}

func (c *commander) negotiate(args []string) string {
	offer := state.NegotiationOffer(strings.ToLower(args[1]))
	if !offer.Valid() {
		return "Usage: " + commands["negotiate"].usage
	}
	gs := c.actions.State()
	if gs.Gang(args[0]) < 0 {
		return fmt.Sprintf("No gang %q.", args[0])
	}
	if c.actions.NegotiateWithGang(args[0], offer) {
		return "They accepted."
	}
	return "Talks went nowhere."
}

func (c *commander) respond(args []string) string {
	response := state.GangResponse(strings.ToLower(args[1]))
	if !response.Valid() {
		return "Usage: " + commands["respond"].usage
	}
	id, ok := c.gangEventID(args[0])
	if !ok {
		return fmt.Sprintf("No open gang event %q.", args[0])
	}
	res, ok := c.actions.ResolveGangEvent(id, response)
	if !ok {
		return "Cannot respond to that event."
	}
	if res.Fought {
		if res.Won {
			return "You won the fight."
		}
		return "You lost the fight."
	}
	return "Outcome: " + c.text.Label(string(res.Outcome)) + "."
}

func (c *commander) choose(args []string) string {
	res, ok := c.actions.ResolveEvent(args[0], args[1])
	if !ok {
		return "That choice is not available."
	}
	msg := res.Consequences.Message
	if msg == "" {
		msg = "Done."
	}
	if res.Success {
		return msg
	}
	return "It went badly. " + msg
}

func (c *commander) dismiss(args []string) string {
	if !c.actions.DismissEvent(args[0]) {
		return fmt.Sprintf("No active event %q.", args[0])
	}
	return "Event dismissed."
}

func (c *commander) reset(_ []string) string {
	c.newGame()
	return "A new game begins."
}

func (c *commander) copySave(_ []string) string {
	if err := c.export(); err != nil {
		return "Export failed: " + err.Error()
	}
	return "Save copied to the clipboard."
}

// memberID accepts a member id or a case-insensitive name prefix.
func (c *commander) memberID(ref string) (string, bool) {
	gs := c.actions.State()
	if gs.Chapter.Member(ref) >= 0 {
		return ref, true
	}
	ref = strings.ToLower(ref)
	for _, m := range gs.Chapter.Members {
		if strings.HasPrefix(strings.ToLower(m.Name), ref) {
			return m.ID, true
		}
	}
	return "", false
}

// gangEventID accepts an unresolved gang event id or a unique prefix of one.
func (c *commander) gangEventID(ref string) (string, bool) {
	var match string
	for _, ev := range c.actions.State().GangEvents {
		if ev.Resolved || !strings.HasPrefix(ev.ID, ref) {
			continue
		}
		if match != "" {
			return "", false
		}
		match = ev.ID
	}
	return match, match != ""
}

func parseAmount(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive amount", s)
	}
	return n, nil
}
