package postgres

import (
	"context"
	"database/sql"

	"esports-career-sim/model"
	"esports-career-sim/pkg/errors"
)

type playerRepo Store

const playerColumns = `id, save_id, game_id, real_name, nationality, age, ability, potential,
	stability, tag, status, position, team_id, salary, market_value, calculated_market_value,
	contract_end_season, join_season, retire_season, is_starter,
	international_titles, regional_titles, champion_bonus`

func scanPlayer(row interface{ Scan(dest ...interface{}) error }) (*model.Player, error) {
	var p model.Player
	var tag, status string
	var position sql.NullString
	var teamID sql.NullInt64
	var contractEnd, retireSeason sql.NullInt64
	if err := row.Scan(&p.ID, &p.SaveID, &p.GameID, &p.RealName, &p.Nationality, &p.Age,
		&p.Ability, &p.Potential, &p.Stability, &tag, &status, &position, &teamID,
		&p.Salary, &p.MarketValue, &p.CalculatedMarketValue, &contractEnd, &p.JoinSeason,
		&retireSeason, &p.IsStarter, &p.InternationalTitles, &p.RegionalTitles, &p.ChampionBonus); err != nil {
		return nil, err
	}
	var err error
	if p.Tag, err = model.ParsePlayerTag(tag); err != nil {
		return nil, err
	}
	if p.Status, err = model.ParsePlayerStatus(status); err != nil {
		return nil, err
	}
	if position.Valid {
		pos, err := model.ParsePosition(position.String)
		if err != nil {
			return nil, err
		}
		p.Position = &pos
	}
	if teamID.Valid {
		id := uint64(teamID.Int64)
		p.TeamID = &id
	}
	if contractEnd.Valid {
		v := uint32(contractEnd.Int64)
		p.ContractEndSeason = &v
	}
	if retireSeason.Valid {
		v := uint32(retireSeason.Int64)
		p.RetireSeason = &v
	}
	return &p, nil
}

func playerPositionArg(p *model.Player) interface{} {
	if p.Position == nil {
		return nil
	}
	return p.Position.String()
}

func playerTeamIDArg(p *model.Player) interface{} {
	if p.TeamID == nil {
		return nil
	}
	return *p.TeamID
}

func playerContractEndArg(p *model.Player) interface{} {
	if p.ContractEndSeason == nil {
		return nil
	}
	return *p.ContractEndSeason
}

func playerRetireSeasonArg(p *model.Player) interface{} {
	if p.RetireSeason == nil {
		return nil
	}
	return *p.RetireSeason
}

func (r *playerRepo) Create(ctx context.Context, p *model.Player) error {
	st := (*Store)(r)
	err := st.db.QueryRowContext(ctx, `
		INSERT INTO players (save_id, game_id, real_name, nationality, age, ability, potential,
			stability, tag, status, position, team_id, salary, market_value, calculated_market_value,
			contract_end_season, join_season, retire_season, is_starter,
			international_titles, regional_titles, champion_bonus)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING id`,
		p.SaveID, p.GameID, p.RealName, p.Nationality, p.Age, p.Ability, p.Potential,
		p.Stability, p.Tag.String(), p.Status.String(), playerPositionArg(p), playerTeamIDArg(p),
		p.Salary, p.MarketValue, p.CalculatedMarketValue, playerContractEndArg(p), p.JoinSeason,
		playerRetireSeasonArg(p), p.IsStarter, p.InternationalTitles, p.RegionalTitles, p.ChampionBonus).Scan(&p.ID)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "create player", err)
	}
	return nil
}

func (r *playerRepo) Get(ctx context.Context, id uint64) (*model.Player, error) {
	st := (*Store)(r)
	row := st.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundError("Player", id)
		}
		return nil, errors.Wrap(errors.PersistenceError, "get player", err)
	}
	return p, nil
}

func (r *playerRepo) Update(ctx context.Context, p *model.Player) error {
	st := (*Store)(r)
	res, err := st.db.ExecContext(ctx, `
		UPDATE players SET game_id=$2, real_name=$3, nationality=$4, age=$5, ability=$6,
			potential=$7, stability=$8, tag=$9, status=$10, position=$11, team_id=$12,
			salary=$13, market_value=$14, calculated_market_value=$15, contract_end_season=$16,
			join_season=$17, retire_season=$18, is_starter=$19,
			international_titles=$20, regional_titles=$21, champion_bonus=$22
		WHERE id=$1`,
		p.ID, p.GameID, p.RealName, p.Nationality, p.Age, p.Ability, p.Potential,
		p.Stability, p.Tag.String(), p.Status.String(), playerPositionArg(p), playerTeamIDArg(p),
		p.Salary, p.MarketValue, p.CalculatedMarketValue, playerContractEndArg(p), p.JoinSeason,
		playerRetireSeasonArg(p), p.IsStarter, p.InternationalTitles, p.RegionalTitles, p.ChampionBonus)
	if err != nil {
		return errors.Wrap(errors.PersistenceError, "update player", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFoundError("Player", p.ID)
	}
	return nil
}

// BatchUpdate runs one UPDATE per player inside the caller's transaction
// rather than a bulk COPY; roster sizes are season-bounded, not bulk ETL.
func (r *playerRepo) BatchUpdate(ctx context.Context, players []*model.Player) error {
	for _, p := range players {
		if err := r.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *playerRepo) listWhere(ctx context.Context, clause string, args ...interface{}) ([]*model.Player, error) {
	st := (*Store)(r)
	rows, err := st.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players WHERE `+clause+` ORDER BY id`, args...)
	if err != nil {
		return nil, errors.Wrap(errors.PersistenceError, "list players", err)
	}
	defer rows.Close()
	var out []*model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, errors.Wrap(errors.PersistenceError, "scan player", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *playerRepo) ListByTeam(ctx context.Context, teamID uint64) ([]*model.Player, error) {
	return r.listWhere(ctx, "team_id = $1", teamID)
}

func (r *playerRepo) ListBySave(ctx context.Context, saveID string) ([]*model.Player, error) {
	return r.listWhere(ctx, "save_id = $1", saveID)
}

func (r *playerRepo) ListFreeAgentsBySave(ctx context.Context, saveID string) ([]*model.Player, error) {
	return r.listWhere(ctx, "save_id = $1 AND status = $2", saveID, model.FreeAgent.String())
}
